package actor_test

import (
	"testing"
	"time"

	"github.com/bokeefe123/modaltron/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoActor struct {
	received chan interface{}
}

func (a *echoActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case string:
		a.received <- msg
		ctx.Reply("echo:" + msg)
	}
}

func TestEngineSendDeliversMessage(t *testing.T) {
	engine := actor.NewEngine()
	received := make(chan interface{}, 1)
	pid := engine.Spawn(actor.NewProps(func() actor.Actor {
		return &echoActor{received: received}
	}), "echo")

	engine.Send(pid, "hello", nil)

	select {
	case msg := <-received:
		assert.Equal(t, "hello", msg)
	case <-time.After(time.Second):
		t.Fatal("message was not delivered")
	}
}

func TestEngineAskReturnsReply(t *testing.T) {
	engine := actor.NewEngine()
	pid := engine.Spawn(actor.NewProps(func() actor.Actor {
		return &echoActor{received: make(chan interface{}, 4)}
	}), "echo")

	result, err := engine.Ask(pid, "ping", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "echo:ping", result)
}

func TestEngineAskReturnsDeadLetterForUnknownPID(t *testing.T) {
	engine := actor.NewEngine()
	_, err := engine.Ask(&actor.PID{ID: "nope"}, "ping", 50*time.Millisecond)
	assert.ErrorIs(t, err, actor.ErrDeadLetter)
}

func TestEngineShutdownDrainsActors(t *testing.T) {
	engine := actor.NewEngine()
	engine.Spawn(actor.NewProps(func() actor.Actor {
		return &echoActor{received: make(chan interface{}, 1)}
	}), "echo")

	engine.Shutdown(time.Second)
	assert.Equal(t, 0, engine.Count())
}
