package actor

import (
	"sync/atomic"
)

const defaultMailboxSize = 1024

// process is the runtime state backing one spawned actor: its mailbox, its
// single-goroutine run loop, and the bookkeeping needed to stop it cleanly.
type process struct {
	engine  *Engine
	pid     *PID
	actor   Actor
	props   *Props
	mailbox chan *messageEnvelope
	stopCh  chan struct{}
	stopped atomic.Bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, defaultMailboxSize),
		stopCh:  make(chan struct{}),
	}
}

// sendMessage enqueues envelope without blocking. A full mailbox drops the
// message, except for the Stopping/Stopped lifecycle messages which must
// always be delivered so the actor can shut down.
func (p *process) sendMessage(envelope *messageEnvelope) {
	if p.stopped.Load() {
		switch envelope.Msg.(type) {
		case Stopping, Stopped:
		default:
			return
		}
	}
	select {
	case p.mailbox <- envelope:
	default:
		switch envelope.Msg.(type) {
		case Stopping, Stopped:
			// Lifecycle messages wait for mailbox space instead of being
			// dropped; the wait happens off the caller's goroutine.
			go func() { p.mailbox <- envelope }()
			return
		}
		p.engine.logger().dropMessage(p.pid, envelope.Msg)
	}
}

func (p *process) run() {
	p.actor = p.props.Produce()
	p.invokeReceive(&messageEnvelope{Msg: Started{}})

	for {
		select {
		case <-p.stopCh:
			p.drainAndStop()
			return
		case envelope := <-p.mailbox:
			if _, ok := envelope.Msg.(Stopping); ok {
				p.invokeReceive(envelope)
				p.drainAndStop()
				return
			}
			p.invokeReceive(envelope)
		}
	}
}

func (p *process) drainAndStop() {
	p.stopped.Store(true)
	// Give queued messages one final non-blocking chance to be processed so
	// a Stopping handler's own sends aren't silently lost, then finalize.
	for {
		select {
		case envelope := <-p.mailbox:
			p.invokeReceive(envelope)
		default:
			p.invokeReceive(&messageEnvelope{Msg: Stopped{}})
			p.engine.remove(p.pid)
			return
		}
	}
}

func (p *process) invokeReceive(envelope *messageEnvelope) {
	defer func() {
		if r := recover(); r != nil {
			p.engine.logger().actorPanic(p.pid, r)
		}
	}()
	ctx := &context{
		engine:    p.engine,
		self:      p.pid,
		sender:    envelope.Sender,
		message:   envelope.Msg,
		requestID: envelope.RequestID,
	}
	p.actor.Receive(ctx)
}
