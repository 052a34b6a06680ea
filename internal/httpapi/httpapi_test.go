package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bokeefe123/modaltron/actor"
	"github.com/bokeefe123/modaltron/internal/config"
	"github.com/bokeefe123/modaltron/internal/room"
)

type noopSpawner struct{}

func (noopSpawner) Spawn(engine *actor.Engine, cfg config.Config, roomPID, broadcasterPID *actor.PID, players []room.Player) *actor.PID {
	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine := actor.NewEngine()
	t.Cleanup(func() { engine.Shutdown(0) })

	cfg := config.FastConfig()
	rooms := room.New(cfg, noopSpawner{}, zerolog.Nop())
	rooms.Spawn(engine)

	return &Server{Engine: engine, Rooms: rooms, Cfg: cfg, Log: zerolog.Nop()}
}

func TestHealthCheckReturnsOK(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health-check/", nil)
	rec := httptest.NewRecorder()

	s.Mux(".").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthCheckRejectsNonGet(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/health-check/", nil)
	rec := httptest.NewRecorder()

	s.Mux(".").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetRoomsReturnsEmptyListInitially(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/rooms/", nil)
	rec := httptest.NewRecorder()

	s.Mux(".").ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var snapshots []room.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshots))
	assert.Empty(t, snapshots)
}
