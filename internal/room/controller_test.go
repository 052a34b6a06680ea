package room

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bokeefe123/modaltron/actor"
	"github.com/bokeefe123/modaltron/internal/config"
)

func spawnTestController(t *testing.T, cfg config.Config, spawner GameSpawner) (*actor.Engine, *RoomsController) {
	t.Helper()
	engine := actor.NewEngine()
	c := New(cfg, spawner, zerolog.Nop())
	c.Spawn(engine)
	time.Sleep(10 * time.Millisecond)
	return engine, c
}

func TestRouteCreateThenJoinThenFetch(t *testing.T) {
	cfg := config.FastConfig()
	engine, c := spawnTestController(t, cfg, &fakeSpawner{})
	defer engine.Shutdown(time.Second)

	createPayload, _ := json.Marshal(map[string]interface{}{"name": "Arena One", "playerName": "alice"})
	value, errCode := c.Route("s1", nil, "room:create", createPayload)
	require.Empty(t, errCode)
	require.NotNil(t, value)

	joinPayload, _ := json.Marshal(map[string]interface{}{"name": "arena one", "playerName": "bob"})
	value, errCode = c.Route("s2", nil, "room:join", joinPayload)
	require.Empty(t, errCode, "room names should be matched case-insensitively")
	require.NotNil(t, value)

	value, errCode = c.Route("s1", nil, "room:fetch", nil)
	require.Empty(t, errCode)
	snapshots, ok := value.([]Snapshot)
	require.True(t, ok)
	require.Len(t, snapshots, 1)
	assert.Len(t, snapshots[0].Players, 2)
}

func TestRouteCreateRejectsDuplicateName(t *testing.T) {
	cfg := config.FastConfig()
	engine, c := spawnTestController(t, cfg, &fakeSpawner{})
	defer engine.Shutdown(time.Second)

	payload, _ := json.Marshal(map[string]interface{}{"name": "dup", "playerName": "alice"})
	_, errCode := c.Route("s1", nil, "room:create", payload)
	require.Empty(t, errCode)

	payload2, _ := json.Marshal(map[string]interface{}{"name": "DUP", "playerName": "bob"})
	_, errCode = c.Route("s2", nil, "room:create", payload2)
	assert.Equal(t, "name_taken", errCode)
}

func TestRouteJoinUnknownRoom(t *testing.T) {
	cfg := config.FastConfig()
	engine, c := spawnTestController(t, cfg, &fakeSpawner{})
	defer engine.Shutdown(time.Second)

	payload, _ := json.Marshal(map[string]interface{}{"name": "ghost", "playerName": "alice"})
	_, errCode := c.Route("s1", nil, "room:join", payload)
	assert.Equal(t, "room_not_found", errCode)
}

func TestRouteLeaveWithoutJoiningIsNotInRoom(t *testing.T) {
	cfg := config.FastConfig()
	engine, c := spawnTestController(t, cfg, &fakeSpawner{})
	defer engine.Shutdown(time.Second)

	_, errCode := c.Route("ghost-session", nil, "room:leave", nil)
	assert.Equal(t, "not_in_room", errCode)
}

func TestRouteUnknownEventName(t *testing.T) {
	cfg := config.FastConfig()
	engine, c := spawnTestController(t, cfg, &fakeSpawner{})
	defer engine.Shutdown(time.Second)

	_, errCode := c.Route("s1", nil, "room:teleport", nil)
	assert.Equal(t, "unknown_event", errCode)
}

func TestDisconnectedReleasesRoomSeat(t *testing.T) {
	cfg := config.FastConfig()
	engine, c := spawnTestController(t, cfg, &fakeSpawner{})
	defer engine.Shutdown(time.Second)

	payload, _ := json.Marshal(map[string]interface{}{"name": "room-x", "playerName": "alice"})
	_, errCode := c.Route("s1", nil, "room:create", payload)
	require.Empty(t, errCode)

	c.Disconnected("s1")
	time.Sleep(20 * time.Millisecond)

	_, errCode = c.Route("s1", nil, "player:ready", []byte(`{"ready":true}`))
	assert.Equal(t, "not_in_room", errCode)
}
