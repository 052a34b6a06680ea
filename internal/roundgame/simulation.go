package roundgame

import (
	"math"

	"github.com/rudransh61/Physix-go/pkg/vector"

	"github.com/bokeefe123/modaltron/actor"
	"github.com/bokeefe123/modaltron/internal/avatar"
	"github.com/bokeefe123/modaltron/internal/bonuskind"
	"github.com/bokeefe123/modaltron/internal/room"
	"github.com/bokeefe123/modaltron/internal/world"
)

// step dispatches one tick of wall-clock time to the current phase, then
// flushes any events accumulated this tick in a single outbound frame
// (§4.6: "events ... are sent at tick boundary").
func (g *Game) step(ctx actor.Context) {
	g.tickCount++

	switch g.phase {
	case phaseWarmup:
		g.phaseTicksRemaining--
		if g.phaseTicksRemaining <= 0 {
			g.phase = phaseRunning
			g.emit("round:new", roundNewPayload{Round: g.roundIndex})
		}

	case phaseRunning:
		g.runTick(ctx)
		g.checkRoundEnd(ctx)

	case phaseRoundEnd:
		g.phaseTicksRemaining--
		if g.phaseTicksRemaining <= 0 {
			g.newRound(ctx)
		}

	case phaseMatchEnd:
	}

	g.flush(ctx)
}

// runTick advances every avatar by one Δt using the two-phase move/collide
// split (§4.3's tie-break rule: all avatars move before any of them query
// the World, so simultaneous head-on deaths resolve together).
func (g *Game) runTick(ctx actor.Context) {
	dt := g.cfg.TickRate.Seconds()

	var died []string
	for _, id := range g.order {
		a := g.avatars[id]
		if !a.Alive {
			continue
		}
		mv := a.Move(dt, g.cfg.AngularVelocity, g.cfg.BoardSize, g.cfg.MinPrintStep, g.tickCount)
		if mv.Died {
			died = append(died, id)
			continue
		}
		if mv.NewTrailBody != nil {
			g.world.Insert(*mv.NewTrailBody)
			g.allTrailIDs = append(g.allTrailIDs, mv.NewTrailBody.ID)
			g.pushGrace(id, mv.NewTrailBody.ID)
		}
		g.world.Insert(a.OwnBody())
	}

	g.world.Repartition()

	for _, id := range g.order {
		a := g.avatars[id]
		if !a.Alive {
			continue
		}
		exclude := g.excludeSetFor(id)
		cl := a.Collide(g.world, exclude, g.tickCount)
		if cl.Died {
			died = append(died, id)
		}
		if cl.PickedUpBonus != nil {
			g.handlePickup(id, *cl.PickedUpBonus)
		}
		a.TickBonuses()
	}

	for _, id := range died {
		g.world.Remove(id)
		a := g.avatars[id]
		g.emit("avatar:die", diePayload{Avatar: id, X: a.Position.X, Y: a.Position.Y})
	}

	spawned, expired := g.bonuses.tick(g.rng, g.cfg, g.world)
	for _, b := range spawned {
		kind, _ := b.Data.(bonuskind.Kind)
		g.emit("bonus:pop", bonusPayload{ID: b.ID, Kind: kind.String(), X: b.Position.X, Y: b.Position.Y})
	}
	for _, id := range expired {
		g.emit("bonus:clear", bonusClearPayload{ID: id, Reason: "expired"})
	}

	if g.tickCount%g.broadcastEveryTicks == 0 {
		g.emitPositions()
	}
}

func (g *Game) excludeSetFor(id string) map[string]struct{} {
	exclude := map[string]struct{}{id: {}}
	for _, trailID := range g.trailGrace[id] {
		exclude[trailID] = struct{}{}
	}
	return exclude
}

func (g *Game) pushGrace(avatarID, trailID string) {
	list := append(g.trailGrace[avatarID], trailID)
	if n := g.cfg.TrailGraceBodies; len(list) > n && n > 0 {
		list = list[len(list)-n:]
	}
	g.trailGrace[avatarID] = list
}

// handlePickup applies a collected bonus's effect per §4.5: GameClear is
// instant (clears every trail body immediately), everything else pushes a
// timed modifier onto the target avatar(s)' effect stack per its Scope.
func (g *Game) handlePickup(pickerID string, bonusBody world.Body) {
	kind, _ := bonusBody.Data.(bonuskind.Kind)
	g.bonuses.remove(bonusBody.ID)
	g.world.Remove(bonusBody.ID)
	g.emit("bonus:clear", bonusClearPayload{ID: bonusBody.ID, Reason: "picked_up"})

	if bonuskind.Instant(kind) {
		for _, id := range g.allTrailIDs {
			g.world.Remove(id)
		}
		g.allTrailIDs = nil
		return
	}

	def := bonuskind.Lookup(kind)
	durationTicks := ticksFor(def.Duration, g.cfg.TickRate)

	switch def.Scope {
	case bonuskind.ScopeSelf:
		g.avatars[pickerID].ApplyBonus(kind, durationTicks)
	case bonuskind.ScopeOpponent:
		for _, id := range g.order {
			if id == pickerID || !g.avatars[id].Alive {
				continue
			}
			g.avatars[id].ApplyBonus(kind, durationTicks)
		}
	case bonuskind.ScopeAll:
		for _, id := range g.order {
			if !g.avatars[id].Alive {
				continue
			}
			g.avatars[id].ApplyBonus(kind, durationTicks)
		}
	}
}

func (g *Game) checkRoundEnd(ctx actor.Context) {
	aliveCount := 0
	for _, id := range g.order {
		if g.avatars[id].Alive {
			aliveCount++
		}
	}
	if aliveCount > 1 {
		return
	}

	scores := g.computeRoundScores()
	for id, delta := range scores {
		g.avatars[id].Score += delta
	}
	g.emit("round:end", roundEndPayload{Scores: scores})

	g.phase = phaseRoundEnd
	g.phaseTicksRemaining = ticksFor(g.cfg.RoundEndDuration, g.cfg.TickRate)
}

// computeRoundScores implements §4.6: every avatar earns one point per
// opponent that died strictly before it (a survivor counts as dying at +∞,
// so it is credited for every death; living opponents never contribute).
func (g *Game) computeRoundScores() map[string]int {
	scores := make(map[string]int, len(g.order))
	for _, xid := range g.order {
		x := g.avatars[xid]
		xTime := deathTimeOf(x)
		score := 0
		for _, yid := range g.order {
			if yid == xid {
				continue
			}
			y := g.avatars[yid]
			if !y.Alive && float64(y.DeathTick) < xTime {
				score++
			}
		}
		scores[xid] = score
	}
	return scores
}

func deathTimeOf(a *avatar.Avatar) float64 {
	if a.Alive {
		return math.Inf(1)
	}
	return float64(a.DeathTick)
}

func (g *Game) newRound(ctx actor.Context) {
	for _, id := range g.order {
		if g.avatars[id].Score >= g.cfg.MaxRoundScore {
			g.endMatch(ctx, "completed")
			return
		}
	}
	g.enterWarmup(ctx, false)
}

func (g *Game) enterWarmup(ctx actor.Context, firstRound bool) {
	g.roundIndex++
	g.world = world.New(cellSizeFor(g.cfg))
	g.allTrailIDs = nil
	g.trailGrace = make(map[string][]string, len(g.order))
	g.bonuses.reset(g.rng, g.cfg)

	positions := g.randomNonOverlappingPositions()
	for i, id := range g.order {
		old := g.avatars[id]
		fresh := avatar.New(avatar.Params{
			ID: id, PlayerID: id, Name: old.Name, Color: old.Color,
			Position: positions[i], Angle: g.rng.Float64() * 2 * math.Pi,
			BaseVelocity: g.cfg.BaseVelocity, BaseRadius: g.cfg.AvatarRadius, Rng: g.rng,
		})
		fresh.Score = old.Score
		g.avatars[id] = fresh
		g.world.Insert(fresh.OwnBody())
	}
	g.world.Repartition()

	if firstRound {
		g.emit("game:start", startPayload{Players: g.playerSummaries()})
	}

	g.phase = phaseWarmup
	g.phaseTicksRemaining = ticksFor(g.cfg.WarmupDuration, g.cfg.TickRate)
}

func (g *Game) endMatch(ctx actor.Context, reason string) {
	g.phase = phaseMatchEnd
	g.stopTickerLoop()

	winner := ""
	best := -1
	for _, id := range g.order {
		if s := g.avatars[id].Score; s > best {
			best = s
			winner = id
		}
	}
	g.emit("end", endPayload{Winner: winner, Reason: reason})
	g.flush(ctx)

	ctx.Engine().Send(g.roomPID, room.GameEnded{Reason: reason}, g.self)
	ctx.Engine().Stop(g.self)
}

func (g *Game) randomNonOverlappingPositions() []vector.Vector {
	positions := make([]vector.Vector, 0, len(g.order))
	for range g.order {
		const maxAttempts = 30
		var candidate vector.Vector
		for attempt := 0; attempt < maxAttempts; attempt++ {
			candidate = randomPoint(g.rng, g.cfg.BoardSize, g.cfg.AvatarRadius)
			ok := true
			for _, placed := range positions {
				dx, dy := candidate.X-placed.X, candidate.Y-placed.Y
				if dx*dx+dy*dy < 4*g.cfg.AvatarRadius*g.cfg.AvatarRadius {
					ok = false
					break
				}
			}
			if ok {
				break
			}
		}
		positions = append(positions, candidate)
	}
	return positions
}
