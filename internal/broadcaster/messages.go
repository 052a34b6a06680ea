// Package broadcaster fans outbound frames out to every session in a room,
// grounded on game/broadcaster_actor.go's AddClient/RemoveClient/
// BroadcastUpdatesCommand trio, adapted from raw *websocket.Conn ownership
// to addressing sessions by actor.PID (the connection itself now lives
// inside internal/session, not the broadcaster).
package broadcaster

import "github.com/bokeefe123/modaltron/actor"

// AddSession registers a session to receive broadcast frames for this room.
type AddSession struct {
	SessionID string
	PID       *actor.PID
}

// RemoveSession unregisters a session (on leave or disconnect).
type RemoveSession struct {
	SessionID string
}

// BroadcastFrame sends frame to every registered session.
type BroadcastFrame struct {
	Frame []byte
}

// SendToSession sends frame to exactly one registered session.
type SendToSession struct {
	SessionID string
	Frame     []byte
}

// CloseAll tells every registered session its room is gone (sent by a Room
// actor while it stops) and clears the registry.
type CloseAll struct {
	Reason string
}
