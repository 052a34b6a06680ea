// Package httpapi wires the process's HTTP surface: a health check, the
// room list endpoint, static client file serving, and the WebSocket
// upgrade route that hands each connection off to its own session.Session
// actor. Grounded on server/handlers.go's HandleSubscribe/HandleGetRooms/
// HandleHealthCheck trio and main.go's http.HandleFunc wiring.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/net/websocket"

	"github.com/bokeefe123/modaltron/actor"
	"github.com/bokeefe123/modaltron/internal/config"
	"github.com/bokeefe123/modaltron/internal/room"
	"github.com/bokeefe123/modaltron/internal/session"
)

// Server holds the dependencies every handler needs: the actor engine, the
// rooms controller (also the session.Router), the game/network config, and
// a logger.
type Server struct {
	Engine *actor.Engine
	Rooms  *room.RoomsController
	Cfg    config.Config
	Log    zerolog.Logger
}

// Mux builds the complete HTTP handler: health check, room list, static
// WEB_DIR file serving, and /subscribe for WebSocket upgrades.
func (s *Server) Mux(webDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health-check/", s.handleHealthCheck())
	mux.HandleFunc("/rooms/", s.handleGetRooms())
	mux.Handle("/subscribe", websocket.Handler(s.handleSubscribe()))
	mux.Handle("/", http.FileServer(http.Dir(webDir)))
	return mux
}

// handleSubscribe upgrades the connection, spawns a Session actor bound to
// this server's RoomsController, and blocks until the session actor
// signals it is done — mirroring HandleSubscribe's block-until-handlerDone
// pattern so the websocket.Handler call doesn't return (and close the
// conn) early.
func (s *Server) handleSubscribe() func(*websocket.Conn) {
	return func(ws *websocket.Conn) {
		defer func() {
			if r := recover(); r != nil {
				s.Log.Error().Interface("reason", r).Msg("panic recovered in websocket subscribe handler")
				_ = ws.Close()
			}
		}()

		sessionID := uuid.New().String()
		done := make(chan struct{})

		args := session.Args{
			Conn:         ws,
			Router:       s.Rooms,
			Engine:       s.Engine,
			Log:          s.Log,
			PingInterval: s.Cfg.PingInterval,
			Done:         done,
			SessionID:    sessionID,
		}
		pid := s.Engine.Spawn(actor.NewProps(session.NewProducer(args)), "session")
		if pid == nil {
			s.Log.Error().Msg("failed to spawn session actor")
			_ = ws.Close()
			return
		}

		<-done
		s.Rooms.Disconnected(sessionID)
	}
}

// handleGetRooms lists every open room by calling the controller's Route
// with the room:fetch event directly, with an empty session id, since this
// is a plain HTTP GET with no session attached.
func (s *Server) handleGetRooms() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		reply, errCode := s.Rooms.Route("", nil, "room:fetch", nil)
		if errCode == "internal" {
			http.Error(w, "error querying room state", http.StatusInternalServerError)
			return
		}
		if errCode != "" {
			http.Error(w, errCode, http.StatusBadRequest)
			return
		}

		snapshots, _ := reply.([]room.Snapshot)
		body, err := json.Marshal(snapshots)
		if err != nil {
			s.Log.Error().Err(err).Msg("failed to marshal room list")
			http.Error(w, "error generating room list", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

func (s *Server) handleHealthCheck() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
