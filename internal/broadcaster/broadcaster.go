package broadcaster

import (
	"github.com/rs/zerolog"

	"github.com/bokeefe123/modaltron/actor"
	"github.com/bokeefe123/modaltron/internal/session"
)

// Broadcaster fans frames out to the sessions currently in one room.
type Broadcaster struct {
	sessions map[string]*actor.PID
	self     *actor.PID
	log      zerolog.Logger
}

// NewProducer creates a producer for a room's Broadcaster.
func NewProducer(log zerolog.Logger) actor.Producer {
	return func() actor.Actor {
		return &Broadcaster{sessions: make(map[string]*actor.PID), log: log}
	}
}

func (b *Broadcaster) Receive(ctx actor.Context) {
	if b.self == nil {
		b.self = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case actor.Started:

	case AddSession:
		b.sessions[msg.SessionID] = msg.PID

	case RemoveSession:
		delete(b.sessions, msg.SessionID)

	case BroadcastFrame:
		for id, pid := range b.sessions {
			ctx.Engine().Send(pid, session.OutboundFrame{Frame: msg.Frame}, b.self)
			_ = id
		}

	case SendToSession:
		if pid, ok := b.sessions[msg.SessionID]; ok {
			ctx.Engine().Send(pid, session.OutboundFrame{Frame: msg.Frame}, b.self)
		}

	case CloseAll:
		for id, pid := range b.sessions {
			ctx.Engine().Send(pid, session.RoomClosed{Reason: msg.Reason}, b.self)
			delete(b.sessions, id)
		}

	case actor.Stopping:
		b.sessions = make(map[string]*actor.PID)

	case actor.Stopped:
	}
}
