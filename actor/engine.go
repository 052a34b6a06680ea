package actor

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ErrTimeout is returned by Ask when no Reply arrives within the deadline.
var ErrTimeout = errors.New("actor: ask timed out")

// ErrDeadLetter is returned by Ask when the target PID has no running
// process (never spawned, or already stopped).
var ErrDeadLetter = errors.New("actor: no such process")

// EventHandler receives diagnostic events the engine cannot otherwise
// report: panics recovered from a Receive call, and messages dropped
// because a mailbox was full. It is normally a thin adapter over a
// structured logger; see internal/logging for the one this repo wires in.
type EventHandler interface {
	ActorPanic(pid *PID, reason interface{})
	MessageDropped(pid *PID, msg interface{})
}

type noopHandler struct{}

func (noopHandler) ActorPanic(*PID, interface{})   {}
func (noopHandler) MessageDropped(*PID, interface{}) {}

// Engine spawns, addresses, and stops actors. One Engine normally backs one
// process; every Room and every Session in this repo shares the same
// Engine so they can Send to each other by PID.
type Engine struct {
	pidCounter uint64
	reqCounter uint64

	mu      sync.RWMutex
	actors  map[string]*process
	pending map[string]chan askResult

	stopping atomic.Bool
	handler  EventHandler
}

// NewEngine creates an Engine with no attached diagnostics handler.
func NewEngine() *Engine {
	return &Engine{
		actors:  make(map[string]*process),
		pending: make(map[string]chan askResult),
		handler: noopHandler{},
	}
}

// WithEventHandler attaches a diagnostics handler and returns the engine for
// chaining, mirroring the teacher's constructor-option-free-but-chainable
// style.
func (e *Engine) WithEventHandler(h EventHandler) *Engine {
	if h != nil {
		e.handler = h
	}
	return e
}

func (e *Engine) logger() diagnostics { return diagnostics{e} }

// diagnostics adapts Engine's handler to the small set of calls process.go
// needs, without exposing EventHandler plumbing on Engine's public surface.
type diagnostics struct{ e *Engine }

func (d diagnostics) actorPanic(pid *PID, reason interface{}) {
	d.e.handler.ActorPanic(pid, reason)
}
func (d diagnostics) dropMessage(pid *PID, msg interface{}) {
	d.e.handler.MessageDropped(pid, msg)
}

func (e *Engine) nextPID(prefix string) *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	return &PID{ID: fmt.Sprintf("%s-%d", prefix, id)}
}

// Spawn creates a new actor from props, starts its run loop, and returns its
// PID. prefix is a human-readable label embedded in the PID for logs.
func (e *Engine) Spawn(props *Props, prefix string) *PID {
	pid := e.nextPID(prefix)
	p := newProcess(e, pid, props)

	e.mu.Lock()
	e.actors[pid.ID] = p
	e.mu.Unlock()

	go p.run()
	return pid
}

func (e *Engine) processFor(pid *PID) *process {
	if pid == nil {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.actors[pid.ID]
}

// Send delivers msg to target's mailbox asynchronously. sender may be nil.
// Sending to an unknown or already-stopped PID is a silent no-op, matching
// normal actor-model dead-letter semantics.
func (e *Engine) Send(target *PID, msg interface{}, sender *PID) {
	p := e.processFor(target)
	if p == nil {
		return
	}
	p.sendMessage(&messageEnvelope{Sender: sender, Msg: msg})
}

// Ask sends msg to target and blocks until the actor calls ctx.Reply, the
// timeout elapses, or target does not exist.
func (e *Engine) Ask(target *PID, msg interface{}, timeout time.Duration) (interface{}, error) {
	p := e.processFor(target)
	if p == nil {
		return nil, ErrDeadLetter
	}

	reqID := fmt.Sprintf("ask-%d", atomic.AddUint64(&e.reqCounter, 1))
	ch := make(chan askResult, 1)

	e.mu.Lock()
	e.pending[reqID] = ch
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		delete(e.pending, reqID)
		e.mu.Unlock()
	}()

	p.sendMessage(&messageEnvelope{Msg: msg, RequestID: reqID})

	select {
	case res := <-ch:
		return res.value, nil
	case <-time.After(timeout):
		return nil, ErrTimeout
	}
}

func (e *Engine) resolveAsk(requestID string, res askResult) {
	e.mu.RLock()
	ch, ok := e.pending[requestID]
	e.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case ch <- res:
	default:
	}
}

// Stop requests that target shut down: it will receive Stopping, finish
// handling any already-enqueued messages, receive Stopped, and be removed.
func (e *Engine) Stop(target *PID) {
	p := e.processFor(target)
	if p == nil {
		return
	}
	p.sendMessage(&messageEnvelope{Msg: Stopping{}})
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}

// Count returns the number of actors currently registered on this engine.
func (e *Engine) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.actors)
}

// Shutdown stops every actor and waits for them to drain, up to timeout.
func (e *Engine) Shutdown(timeout time.Duration) {
	e.stopping.Store(true)

	e.mu.RLock()
	pids := make([]*PID, 0, len(e.actors))
	for _, p := range e.actors {
		pids = append(pids, p.pid)
	}
	e.mu.RUnlock()

	for _, pid := range pids {
		e.Stop(pid)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if e.Count() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	e.mu.Lock()
	e.actors = make(map[string]*process)
	e.mu.Unlock()
}
