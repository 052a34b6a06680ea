package room

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bokeefe123/modaltron/actor"
	"github.com/bokeefe123/modaltron/internal/broadcaster"
	"github.com/bokeefe123/modaltron/internal/collection"
	"github.com/bokeefe123/modaltron/internal/config"
)

// Player is one seat in a room's lobby.
type Player struct {
	SessionID  string
	SessionPID *actor.PID
	Name       string
	Color      string
	Ready      bool
}

// ID implements collection.Identifiable.
func (p Player) ID() string { return p.SessionID }

// Room is the lobby for one named room. Before a match starts it only
// tracks players and config; room:start hands control to a spawned Game
// actor and Room becomes a thin forwarder for player:move until the match
// ends (§4.7, §4.6).
type Room struct {
	name       string
	cfg        config.Config
	log        zerolog.Logger
	controller *actor.PID

	self          *actor.PID
	players       *collection.Collection[Player]
	leaderID      string
	roomConfig    map[string]interface{}
	broadcaster   *actor.PID
	game          *actor.PID
	idleTimer     *time.Timer
	gameSpawner   GameSpawner
}

// GameSpawner spawns the per-match actor once a room starts. Kept as an
// interface so internal/room never imports internal/roundgame directly;
// internal/roundgame would otherwise need to import internal/room for the
// GameEnded message, creating a cycle.
type GameSpawner interface {
	Spawn(engine *actor.Engine, cfg config.Config, roomPID, broadcasterPID *actor.PID, players []Player) *actor.PID
}

// NewProducer creates a producer for one Room actor.
func NewProducer(name string, cfg config.Config, controller *actor.PID, spawner GameSpawner, log zerolog.Logger) actor.Producer {
	return func() actor.Actor {
		return &Room{
			name:        name,
			cfg:         cfg,
			log:         log,
			controller:  controller,
			players:     collection.New[Player](),
			roomConfig:  map[string]interface{}{"maxRoundScore": cfg.MaxRoundScore},
			gameSpawner: spawner,
		}
	}
}

func (r *Room) Receive(ctx actor.Context) {
	if r.self == nil {
		r.self = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case actor.Started:
		r.broadcaster = ctx.Engine().Spawn(actor.NewProps(broadcaster.NewProducer(r.log)), "broadcaster")
		engine := ctx.Engine()
		r.players.OnAdd(func(p Player) {
			engine.Send(r.broadcaster, broadcaster.AddSession{SessionID: p.SessionID, PID: p.SessionPID}, r.self)
		})
		r.players.OnRemove(func(p Player) {
			engine.Send(r.broadcaster, broadcaster.RemoveSession{SessionID: p.SessionID}, r.self)
		})
		r.resetIdleTimer(ctx)

	case JoinRoom:
		ctx.Reply(r.handleJoin(ctx, msg))

	case LeaveRoom:
		ctx.Reply(r.handleLeave(ctx, msg.SessionID))

	case SessionDisconnected:
		r.handleLeave(ctx, msg.SessionID)

	case SetReady:
		ctx.Reply(r.handleSetReady(msg))

	case SetConfig:
		ctx.Reply(r.handleSetConfig(msg))

	case StartRoom:
		ctx.Reply(r.handleStart(ctx, msg))

	case PlayerMoveEvent:
		if r.game != nil {
			ctx.Engine().Send(r.game, msg, r.self)
		}

	case GameEnded:
		r.handleGameEnded(ctx, msg)

	case snapshotRequest:
		snap := r.snapshot()
		ctx.Reply(&snap)

	case idleCheck:
		if r.players.Len() == 0 {
			ctx.Engine().Stop(r.self)
		}

	case actor.Stopping:
		if r.idleTimer != nil {
			r.idleTimer.Stop()
		}
		if r.game != nil {
			ctx.Engine().Stop(r.game)
		}
		if r.broadcaster != nil {
			ctx.Engine().Send(r.broadcaster, broadcaster.CloseAll{Reason: "room_closed"}, r.self)
			ctx.Engine().Stop(r.broadcaster)
		}
		if r.controller != nil {
			ctx.Engine().Send(r.controller, roomEmptied{Name: r.name}, r.self)
		}

	case actor.Stopped:
	}
}

func (r *Room) handleJoin(ctx actor.Context, msg JoinRoom) Reply {
	if r.game != nil {
		return Reply{ErrCode: "room_in_progress"}
	}
	if r.players.Len() >= r.cfg.MaxPlayers {
		return Reply{ErrCode: "room_full"}
	}
	if r.players.Has(msg.SessionID) {
		return Reply{ErrCode: "already_joined"}
	}

	p := Player{SessionID: msg.SessionID, SessionPID: msg.SessionPID, Name: msg.PlayerName, Color: msg.Color}
	r.players.Add(p)
	if r.leaderID == "" {
		r.leaderID = msg.SessionID
	}
	r.resetIdleTimer(ctx)

	snap := r.snapshot()
	return Reply{Room: &snap, RoomPID: r.self}
}

func (r *Room) handleLeave(ctx actor.Context, sessionID string) Reply {
	_, ok := r.players.Remove(sessionID)
	if !ok {
		return Reply{ErrCode: "not_in_room"}
	}

	if r.leaderID == sessionID {
		r.leaderID = ""
		if items := r.players.Items(); len(items) > 0 {
			r.leaderID = items[0].SessionID
		}
	}
	if r.players.Len() == 0 {
		ctx.Engine().Stop(r.self)
	}
	return Reply{}
}

func (r *Room) handleSetReady(msg SetReady) Reply {
	p, ok := r.players.Get(msg.SessionID)
	if !ok {
		return Reply{ErrCode: "not_in_room"}
	}
	p.Ready = msg.Ready
	r.players.Set(p)
	return Reply{}
}

func (r *Room) handleSetConfig(msg SetConfig) Reply {
	if msg.SessionID != r.leaderID {
		return Reply{ErrCode: "not_leader"}
	}
	if r.game != nil {
		return Reply{ErrCode: "room_in_progress"}
	}
	r.roomConfig[msg.Key] = msg.Value
	return Reply{}
}

func (r *Room) handleStart(ctx actor.Context, msg StartRoom) Reply {
	if msg.SessionID != r.leaderID {
		return Reply{ErrCode: "not_leader"}
	}
	if r.game != nil {
		return Reply{ErrCode: "room_in_progress"}
	}

	minNeeded := r.cfg.MinPlayers
	if r.cfg.SoloAllowed {
		minNeeded = 1
	}
	players := r.players.Items()
	if len(players) < minNeeded {
		return Reply{ErrCode: "not_enough_players"}
	}
	for _, p := range players {
		if !p.Ready {
			return Reply{ErrCode: "not_all_ready"}
		}
	}

	effectiveCfg := r.cfg
	if v, ok := r.roomConfig["maxRoundScore"].(int); ok && v > 0 {
		effectiveCfg.MaxRoundScore = v
	}

	r.game = r.gameSpawner.Spawn(ctx.Engine(), effectiveCfg, r.self, r.broadcaster, players)
	return Reply{}
}

func (r *Room) handleGameEnded(ctx actor.Context, msg GameEnded) {
	r.game = nil
	for _, p := range r.players.Items() {
		p.Ready = false
		r.players.Set(p)
	}
	r.resetIdleTimer(ctx)
}

func (r *Room) snapshot() Snapshot {
	players := make([]PlayerSummary, 0, r.players.Len())
	for _, p := range r.players.Items() {
		players = append(players, PlayerSummary{ID: p.SessionID, Name: p.Name, Color: p.Color, Ready: p.Ready})
	}
	cfgCopy := make(map[string]interface{}, len(r.roomConfig))
	for k, v := range r.roomConfig {
		cfgCopy[k] = v
	}
	return Snapshot{
		Name:       r.name,
		MaxPlayers: r.cfg.MaxPlayers,
		Open:       r.game == nil,
		Config:     cfgCopy,
		Players:    players,
		InGame:     r.game != nil,
	}
}

func (r *Room) resetIdleTimer(ctx actor.Context) {
	if r.idleTimer != nil {
		r.idleTimer.Stop()
	}
	if r.players.Len() > 0 || r.cfg.RoomIdleTimeout <= 0 {
		return
	}
	self := r.self
	engine := ctx.Engine()
	r.idleTimer = time.AfterFunc(r.cfg.RoomIdleTimeout, func() {
		engine.Send(self, idleCheck{}, nil)
	})
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
