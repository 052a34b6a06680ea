// Package session implements the Socket Session actor: one per WebSocket
// connection, owning frame coalescing, ack correlation, and ping/pong
// latency tracking. Grounded on server/connection_handler.go's
// ConnectionHandlerActor (readLoop goroutine, stopReadLoop/readLoopExited
// channels, sync.Once-guarded completion).
package session

import "github.com/bokeefe123/modaltron/actor"

// OutboundFrame is a raw, already-encoded wire frame to write to the
// socket. Sent by a Broadcaster or directly by a Room/Game actor.
type OutboundFrame struct {
	Frame []byte
}

// RoomClosed notifies the session its room was torn down: it is sent when
// the Room actor stops, and the session forwards it as a room:kicked event.
type RoomClosed struct {
	Reason string
}

// internalReadResult is posted back to the session's own mailbox by its
// readLoop goroutine, one per inbound frame or terminal error.
type internalReadResult struct {
	frame []byte
	err   error
}

// internalPongReceived is posted by the read path when a pong event named
// "pong" is seen, carrying the echoed timestamp for latency calculation.
type internalPongReceived struct {
	echoedMillis int64
}

// pingTick is sent by the session's own ping ticker goroutine.
type pingTick struct{}

// Router dispatches a decoded inbound event to the lobby/room domain layer
// and returns the ack result. Implemented by internal/room's RoomsController
// façade; kept as an interface here so internal/session has no import-time
// dependency on internal/room (avoids an import cycle, since broadcaster
// already depends on session).
type Router interface {
	// Route handles one inbound event on behalf of sessionID, blocking
	// until a domain-level result (or timeout) is available. ackErr is a
	// short error code (the §7 taxonomy codes, lobby-specific codes, or
	// unknown_event for an unrecognized name), or "" on success.
	Route(sessionID string, sessionPID *actor.PID, name string, data []byte) (result interface{}, ackErr string)
}
