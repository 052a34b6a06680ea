package room

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bokeefe123/modaltron/actor"
	"github.com/bokeefe123/modaltron/internal/config"
)

const testAskTimeout = 500 * time.Millisecond

type fakeSpawner struct {
	spawned bool
	players []Player
}

func (f *fakeSpawner) Spawn(engine *actor.Engine, cfg config.Config, roomPID, broadcasterPID *actor.PID, players []Player) *actor.PID {
	f.spawned = true
	f.players = players
	return engine.Spawn(actor.NewProps(func() actor.Actor { return &noopActor{} }), "fake-game")
}

type noopActor struct{}

func (a *noopActor) Receive(ctx actor.Context) {}

func spawnTestRoom(t *testing.T, cfg config.Config, spawner GameSpawner) (*actor.Engine, *actor.PID) {
	t.Helper()
	engine := actor.NewEngine()
	pid := engine.Spawn(actor.NewProps(NewProducer("test-room", cfg, nil, spawner, zerolog.Nop())), "room")
	time.Sleep(10 * time.Millisecond)
	return engine, pid
}

func TestJoinRoomThenLeaveRoom(t *testing.T) {
	cfg := config.FastConfig()
	engine, pid := spawnTestRoom(t, cfg, &fakeSpawner{})
	defer engine.Shutdown(time.Second)

	reply, err := engine.Ask(pid, JoinRoom{SessionID: "s1", PlayerName: "alice", Color: "red"}, testAskTimeout)
	require.NoError(t, err)
	r := reply.(Reply)
	require.Empty(t, r.ErrCode)
	require.NotNil(t, r.Room)
	assert.Len(t, r.Room.Players, 1)
	assert.Equal(t, "alice", r.Room.Players[0].Name)

	reply, err = engine.Ask(pid, LeaveRoom{SessionID: "s1"}, testAskTimeout)
	require.NoError(t, err)
	assert.Empty(t, reply.(Reply).ErrCode)
}

func TestJoinRoomRejectsDuplicateSession(t *testing.T) {
	cfg := config.FastConfig()
	engine, pid := spawnTestRoom(t, cfg, &fakeSpawner{})
	defer engine.Shutdown(time.Second)

	_, err := engine.Ask(pid, JoinRoom{SessionID: "s1", PlayerName: "alice"}, testAskTimeout)
	require.NoError(t, err)

	reply, err := engine.Ask(pid, JoinRoom{SessionID: "s1", PlayerName: "alice-again"}, testAskTimeout)
	require.NoError(t, err)
	assert.Equal(t, "already_joined", reply.(Reply).ErrCode)
}

func TestStartRoomRequiresLeaderAllReadyAndMinPlayers(t *testing.T) {
	cfg := config.FastConfig()
	cfg.MinPlayers = 2
	cfg.SoloAllowed = false
	spawner := &fakeSpawner{}
	engine, pid := spawnTestRoom(t, cfg, spawner)
	defer engine.Shutdown(time.Second)

	_, err := engine.Ask(pid, JoinRoom{SessionID: "leader", PlayerName: "leader"}, testAskTimeout)
	require.NoError(t, err)

	reply, err := engine.Ask(pid, StartRoom{SessionID: "leader"}, testAskTimeout)
	require.NoError(t, err)
	assert.Equal(t, "not_enough_players", reply.(Reply).ErrCode)

	_, err = engine.Ask(pid, JoinRoom{SessionID: "second", PlayerName: "bob"}, testAskTimeout)
	require.NoError(t, err)

	reply, err = engine.Ask(pid, StartRoom{SessionID: "second"}, testAskTimeout)
	require.NoError(t, err)
	assert.Equal(t, "not_leader", reply.(Reply).ErrCode)

	reply, err = engine.Ask(pid, StartRoom{SessionID: "leader"}, testAskTimeout)
	require.NoError(t, err)
	assert.Equal(t, "not_all_ready", reply.(Reply).ErrCode)

	_, err = engine.Ask(pid, SetReady{SessionID: "leader", Ready: true}, testAskTimeout)
	require.NoError(t, err)
	_, err = engine.Ask(pid, SetReady{SessionID: "second", Ready: true}, testAskTimeout)
	require.NoError(t, err)

	reply, err = engine.Ask(pid, StartRoom{SessionID: "leader"}, testAskTimeout)
	require.NoError(t, err)
	assert.Empty(t, reply.(Reply).ErrCode)
	assert.True(t, spawner.spawned)
	assert.Len(t, spawner.players, 2)
}

func TestSetConfigRejectsNonLeader(t *testing.T) {
	cfg := config.FastConfig()
	engine, pid := spawnTestRoom(t, cfg, &fakeSpawner{})
	defer engine.Shutdown(time.Second)

	_, err := engine.Ask(pid, JoinRoom{SessionID: "leader", PlayerName: "leader"}, testAskTimeout)
	require.NoError(t, err)
	_, err = engine.Ask(pid, JoinRoom{SessionID: "other", PlayerName: "other"}, testAskTimeout)
	require.NoError(t, err)

	reply, err := engine.Ask(pid, SetConfig{SessionID: "other", Key: "maxRoundScore", Value: 5}, testAskTimeout)
	require.NoError(t, err)
	assert.Equal(t, "not_leader", reply.(Reply).ErrCode)

	reply, err = engine.Ask(pid, SetConfig{SessionID: "leader", Key: "maxRoundScore", Value: 5}, testAskTimeout)
	require.NoError(t, err)
	assert.Empty(t, reply.(Reply).ErrCode)
}

func TestGameEndedResetsReadyFlagsAndReopensRoom(t *testing.T) {
	cfg := config.FastConfig()
	cfg.MinPlayers = 1
	cfg.SoloAllowed = true
	spawner := &fakeSpawner{}
	engine, pid := spawnTestRoom(t, cfg, spawner)
	defer engine.Shutdown(time.Second)

	_, err := engine.Ask(pid, JoinRoom{SessionID: "solo", PlayerName: "solo"}, testAskTimeout)
	require.NoError(t, err)
	_, err = engine.Ask(pid, SetReady{SessionID: "solo", Ready: true}, testAskTimeout)
	require.NoError(t, err)
	_, err = engine.Ask(pid, StartRoom{SessionID: "solo"}, testAskTimeout)
	require.NoError(t, err)

	engine.Send(pid, GameEnded{Reason: "completed"}, nil)
	time.Sleep(20 * time.Millisecond)

	reply, err := engine.Ask(pid, StartRoom{SessionID: "solo"}, testAskTimeout)
	require.NoError(t, err)
	assert.Equal(t, "not_all_ready", reply.(Reply).ErrCode, "ready flag should reset after a match ends")
}
