package roundgame

import (
	"math/rand"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"

	"github.com/bokeefe123/modaltron/actor"
	"github.com/bokeefe123/modaltron/internal/avatar"
	"github.com/bokeefe123/modaltron/internal/config"
	"github.com/bokeefe123/modaltron/internal/room"
	"github.com/bokeefe123/modaltron/internal/wire"
	"github.com/bokeefe123/modaltron/internal/world"
)

type phase int

const (
	phaseWarmup phase = iota
	phaseRunning
	phaseRoundEnd
	phaseMatchEnd
)

// Game is the fixed-step per-match simulation actor: it owns every Avatar,
// the World, and the bonus subsystem for one Room's match, advancing one
// tick at a time per §4.6.
type Game struct {
	cfg            config.Config
	engine         *actor.Engine
	roomPID        *actor.PID
	broadcasterPID *actor.PID
	log            zerolog.Logger
	self           *actor.PID

	order   []string
	avatars map[string]*avatar.Avatar
	world   *world.World
	bonuses *bonusManager
	rng     *rand.Rand

	phase               phase
	phaseTicksRemaining int
	tickCount           int
	roundIndex          int
	broadcastEveryTicks int

	trailGrace  map[string][]string
	allTrailIDs []string

	ticker     *time.Ticker
	stopTicker chan struct{}

	outbox wire.Builder
}

// NewProducer creates a producer for one match's Game actor.
func NewProducer(engine *actor.Engine, cfg config.Config, roomPID, broadcasterPID *actor.PID, players []room.Player, log zerolog.Logger) actor.Producer {
	return func() actor.Actor {
		g := &Game{
			cfg:            cfg,
			engine:         engine,
			roomPID:        roomPID,
			broadcasterPID: broadcasterPID,
			log:            log,
			avatars:        make(map[string]*avatar.Avatar, len(players)),
			world:          world.New(cellSizeFor(cfg)),
			bonuses:        newBonusManager(),
			rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
			trailGrace:     make(map[string][]string, len(players)),
			stopTicker:     make(chan struct{}),
		}

		ratio := float64(time.Second) / float64(cfg.TickRate) / float64(cfg.BroadcastRateHz)
		g.broadcastEveryTicks = maxInt(1, int(ratio))

		for _, p := range players {
			g.order = append(g.order, p.SessionID)
			g.avatars[p.SessionID] = avatar.New(avatar.Params{
				ID: p.SessionID, PlayerID: p.SessionID, Name: p.Name, Color: p.Color,
				BaseVelocity: cfg.BaseVelocity, BaseRadius: cfg.AvatarRadius, Rng: g.rng,
			})
		}
		return g
	}
}

func (g *Game) Receive(ctx actor.Context) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error().Interface("reason", r).Str("stack", string(debug.Stack())).Msg("game panic recovered")
			g.recoverToLobby(ctx)
		}
	}()

	if g.self == nil {
		g.self = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case actor.Started:
		g.enterWarmup(ctx, true)
		g.ticker = time.NewTicker(g.cfg.TickRate)
		go g.runTickerLoop()

	case tick:
		g.step(ctx)

	case room.PlayerMoveEvent:
		if a, ok := g.avatars[msg.SessionID]; ok {
			a.SetInput(avatar.Turn(msg.Turn))
		}

	case actor.Stopping:
		g.stopTickerLoop()

	case actor.Stopped:
	}
}

func (g *Game) runTickerLoop() {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error().Interface("reason", r).Msg("game ticker loop panic recovered")
		}
	}()
	for {
		select {
		case <-g.stopTicker:
			return
		case _, ok := <-g.ticker.C:
			if !ok {
				return
			}
			select {
			case <-g.stopTicker:
				return
			default:
				g.engine.Send(g.self, tick{}, nil)
			}
		}
	}
}

func (g *Game) stopTickerLoop() {
	if g.ticker != nil {
		g.ticker.Stop()
	}
	select {
	case <-g.stopTicker:
	default:
		close(g.stopTicker)
	}
}

// recoverToLobby implements §7's panic policy: the Game ends with an
// "end" event carrying reason:"internal", and the owning Room is told to
// reopen its lobby.
func (g *Game) recoverToLobby(ctx actor.Context) {
	g.stopTickerLoop()
	g.emit("end", endPayload{Reason: "internal"})
	g.flush(ctx)
	ctx.Engine().Send(g.roomPID, room.GameEnded{Reason: "internal"}, g.self)
	ctx.Engine().Stop(g.self)
}

func cellSizeFor(cfg config.Config) float64 {
	maxRadius := cfg.AvatarRadius
	if cfg.BonusRadius > maxRadius {
		maxRadius = cfg.BonusRadius
	}
	return 4 * maxRadius
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
