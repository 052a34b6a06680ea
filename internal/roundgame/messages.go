// Package roundgame implements the Game actor: the fixed-step simulation
// that owns a round's Avatars and World between room:start and the match's
// end, per §4.6. Grounded on game/game_actor.go's single-ticker,
// self-addressed-tick pattern, generalized from ball physics to the
// steer/print/collide avatar contract and a multi-phase round state
// machine.
package roundgame

// tick is sent to the Game's own mailbox by its ticker goroutine, exactly
// as GameActor's runTickerLoop sends itself *GameTick.
type tick struct{}
