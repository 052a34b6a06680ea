package roundgame

import (
	"github.com/rs/zerolog"

	"github.com/bokeefe123/modaltron/actor"
	"github.com/bokeefe123/modaltron/internal/config"
	"github.com/bokeefe123/modaltron/internal/room"
)

// Spawner implements room.GameSpawner, handing a Room the PID of a freshly
// produced Game actor for its match.
type Spawner struct {
	Log zerolog.Logger
}

func (s Spawner) Spawn(engine *actor.Engine, cfg config.Config, roomPID, broadcasterPID *actor.PID, players []room.Player) *actor.PID {
	producer := NewProducer(engine, cfg, roomPID, broadcasterPID, players, s.Log)
	return engine.Spawn(actor.NewProps(producer), "game")
}
