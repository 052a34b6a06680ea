// Command modaltron starts the game server process: it wires the actor
// engine, the rooms registry, and the HTTP/WebSocket surface, then serves
// until the listener fails. Grounded on the teacher's main.go wiring order
// (engine -> top-level actor -> HTTP handlers -> ListenAndServe -> graceful
// engine shutdown on exit).
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bokeefe123/modaltron/actor"
	"github.com/bokeefe123/modaltron/internal/config"
	"github.com/bokeefe123/modaltron/internal/httpapi"
	"github.com/bokeefe123/modaltron/internal/logging"
	"github.com/bokeefe123/modaltron/internal/room"
	"github.com/bokeefe123/modaltron/internal/roundgame"
)

func main() {
	log := logging.New(os.Stderr, zerolog.InfoLevel)
	cfg := config.DefaultConfig()
	procCfg := config.LoadProcessConfig()

	engine := actor.NewEngine().WithEventHandler(logging.ActorEventHandler{Log: log})

	spawner := roundgame.Spawner{Log: log}
	rooms := room.New(cfg, spawner, log)
	rooms.Spawn(engine)

	srv := &httpapi.Server{Engine: engine, Rooms: rooms, Cfg: cfg, Log: log}
	mux := srv.Mux(procCfg.WebDir)

	addr := ":" + procCfg.Port
	log.Info().Str("addr", addr).Str("webDir", procCfg.WebDir).Msg("starting modaltron server")

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("server stopped")
		log.Info().Msg("shutting down actor engine")
		engine.Shutdown(5 * time.Second)
	}
}
