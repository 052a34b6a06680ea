// Package room implements the lobby: named Rooms (pre-game it is a lobby,
// during play it wraps exactly one Game, per the GLOSSARY) and the global
// RoomsController registry. Grounded on game/room_manager.go's Ask/Reply
// request pattern, reworked from anonymous auto-assigned rooms to the
// spec's named create/join/leave/ready/config/start lobby protocol (§4.7).
package room

import "github.com/bokeefe123/modaltron/actor"

// PlayerSummary is the public view of one player in a room.
type PlayerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Ready bool   `json:"ready"`
}

// Snapshot is the public view of a room, sent on create/join/fetch.
type Snapshot struct {
	Name       string            `json:"name"`
	MaxPlayers int               `json:"maxPlayers"`
	Open       bool              `json:"open"`
	Config     map[string]interface{} `json:"config"`
	Players    []PlayerSummary   `json:"players"`
	InGame     bool              `json:"inGame"`
}

// Reply is the uniform Ask response shape for every lobby operation:
// ErrCode is a short error code, empty on success: one of the §7 taxonomy
// codes or a lobby-specific one (bad_name, already_joined, not_all_ready,
// room_in_progress).
type Reply struct {
	ErrCode string
	Room    *Snapshot
	RoomPID *actor.PID
	Value   interface{} // e.g. []Snapshot for room:fetch
}

// --- Messages to RoomsController ---

// FetchRooms lists every open room.
type FetchRooms struct{}

// CreateRoom creates a new named room and joins the requester to it.
type CreateRoom struct {
	Name       string
	Config     map[string]interface{}
	PlayerName string
	Color      string
	SessionID  string
	SessionPID *actor.PID
}

// JoinRoom joins the requester to an existing named room.
type JoinRoom struct {
	Name       string
	PlayerName string
	Color      string
	SessionID  string
	SessionPID *actor.PID
}

// LeaveRoom removes the requester's player from whatever room it is in.
type LeaveRoom struct {
	SessionID string
}

// SetReady toggles the requester's ready flag.
type SetReady struct {
	SessionID string
	Ready     bool
}

// SetConfig mutates a room's config entry; only the leader may call this.
type SetConfig struct {
	SessionID string
	Key       string
	Value     interface{}
}

// StartRoom starts the match once every player is ready; only the leader
// may call this.
type StartRoom struct {
	SessionID string
}

// PlayerMoveEvent carries a steering input; routed without an ack.
// Turn is -1, 0, or 1.
type PlayerMoveEvent struct {
	SessionID string
	Turn      int
}

// SessionDisconnected tells the controller a session is gone, so it can be
// removed from whatever room it occupied, exactly as room:leave would.
type SessionDisconnected struct {
	SessionID string
}

// --- Messages from Game back up to Room ---

// GameEnded notifies the owning Room that its match has concluded (normal
// end or the §7 "internal" recovery path) so the room can reopen.
type GameEnded struct {
	Reason string
}

// --- Internal room bookkeeping messages ---

type snapshotRequest struct{}

type roomEmptied struct {
	Name string
}

type idleCheck struct{}
