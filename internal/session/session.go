package session

import (
	"encoding/json"
	"errors"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/net/websocket"

	"github.com/bokeefe123/modaltron/actor"
)

// Session owns one WebSocket connection end to end: decoding inbound
// frames, routing events to the domain layer, coalescing outbound events
// into one frame per inbound batch, and the ~1s ping/pong latency probe
// from §4.1.
type Session struct {
	ID     string
	conn   *websocket.Conn
	router Router
	engine *actor.Engine
	self   *actor.PID
	log    zerolog.Logger

	pingInterval time.Duration

	stopRead     chan struct{}
	readExited   chan struct{}
	stopPing     chan struct{}
	closeOnce    sync.Once
	done         chan struct{}

	lastPingSentAt time.Time
	latency        time.Duration
}

// Args configures a new Session. SessionID lets the caller fix the id up
// front (so it can be used to key a disconnect callback before the actor
// has started); a random one is generated if left empty.
type Args struct {
	Conn         *websocket.Conn
	Router       Router
	Engine       *actor.Engine
	Log          zerolog.Logger
	PingInterval time.Duration
	Done         chan struct{}
	SessionID    string
}

// NewProducer creates a producer for one Session actor.
func NewProducer(args Args) actor.Producer {
	id := args.SessionID
	if id == "" {
		id = uuid.New().String()
	}
	return func() actor.Actor {
		return &Session{
			ID:           id,
			conn:         args.Conn,
			router:       args.Router,
			engine:       args.Engine,
			log:          args.Log,
			pingInterval: args.PingInterval,
			stopRead:     make(chan struct{}),
			readExited:   make(chan struct{}),
			stopPing:     make(chan struct{}),
			done:         args.Done,
		}
	}
}

func (s *Session) Receive(ctx actor.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("reason", r).Str("stack", string(debug.Stack())).Msg("session panic recovered")
			s.cleanup(ctx, errors.New("panic"))
		}
	}()

	if s.self == nil {
		s.self = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case actor.Started:
		go s.readLoop()
		go s.pingLoop()

	case internalReadResult:
		if msg.err != nil {
			s.cleanup(ctx, msg.err)
			return
		}
		s.handleInboundFrame(msg.frame)

	case internalPongReceived:
		sentMillis := s.lastPingSentAt.UnixMilli()
		if msg.echoedMillis == sentMillis {
			nowMillis := time.Now().UnixMilli()
			s.latency = time.Duration((nowMillis-sentMillis)/2) * time.Millisecond
		}

	case pingTick:
		s.sendPing()

	case OutboundFrame:
		s.write(msg.Frame)

	case RoomClosed:
		s.write(encodeSingleEvent("room:kicked", msg.Reason))

	case actor.Stopping:
		s.signalAndWaitForRead()
		close(s.stopPing)
		s.closeConn()

	case actor.Stopped:
		s.closeOnce.Do(func() {
			if s.done != nil {
				close(s.done)
			}
		})
	}
}

// Latency returns the most recently computed round-trip-derived latency.
func (s *Session) Latency() time.Duration { return s.latency }
