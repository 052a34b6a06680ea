package room

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bokeefe123/modaltron/actor"
	"github.com/bokeefe123/modaltron/internal/config"
)

// RoomsController is the process-wide registry of named rooms. It is the
// single PID every Session's Router call reaches first; per-room lobby and
// in-game operations are forwarded to the owning Room by looking up which
// room each session currently occupies. Grounded on game/room_manager.go's
// RoomManagerActor registry, reworked from anonymous-assignment to named
// create/join (§4.7).
type RoomsController struct {
	cfg     config.Config
	log     zerolog.Logger
	spawner GameSpawner

	engine      *actor.Engine
	self        *actor.PID
	rooms       map[string]*actor.PID // normalized name -> Room PID
	sessionRoom map[string]*actor.PID // sessionID -> Room PID currently joined
}

// New creates the controller. Route (and therefore session.Router) can be
// called on the result immediately, but it only starts forwarding into the
// actor mailbox once Spawn has run.
func New(cfg config.Config, spawner GameSpawner, log zerolog.Logger) *RoomsController {
	return &RoomsController{
		cfg:         cfg,
		log:         log,
		spawner:     spawner,
		rooms:       make(map[string]*actor.PID),
		sessionRoom: make(map[string]*actor.PID),
	}
}

// Spawn registers the controller with engine as its own actor. The
// producer returns this same instance rather than building a fresh one,
// since callers hold a *RoomsController reference before the actor exists
// (main.go wires it into the HTTP layer as a session.Router).
func (c *RoomsController) Spawn(engine *actor.Engine) *actor.PID {
	c.engine = engine
	pid := engine.Spawn(actor.NewProps(func() actor.Actor { return c }), "rooms")
	c.self = pid
	return pid
}

func (c *RoomsController) Receive(ctx actor.Context) {
	if c.self == nil {
		c.self = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case actor.Started:

	case FetchRooms:
		ctx.Reply(c.handleFetch(ctx))

	case CreateRoom:
		ctx.Reply(c.handleCreate(ctx, msg))

	case JoinRoom:
		ctx.Reply(c.handleJoinExisting(ctx, msg))

	case LeaveRoom:
		ctx.Reply(c.forwardToCurrentRoom(ctx, msg.SessionID, msg))

	case SessionDisconnected:
		c.forwardToCurrentRoom(ctx, msg.SessionID, LeaveRoom{SessionID: msg.SessionID})

	case SetReady:
		ctx.Reply(c.forwardToCurrentRoom(ctx, msg.SessionID, msg))

	case SetConfig:
		ctx.Reply(c.forwardToCurrentRoom(ctx, msg.SessionID, msg))

	case StartRoom:
		ctx.Reply(c.forwardToCurrentRoom(ctx, msg.SessionID, msg))

	case PlayerMoveEvent:
		if pid, ok := c.sessionRoom[msg.SessionID]; ok {
			ctx.Engine().Send(pid, msg, c.self)
		}

	case roomEmptied:
		delete(c.rooms, normalizeName(msg.Name))

	case actor.Stopping:
	case actor.Stopped:
	}
}

func (c *RoomsController) handleFetch(ctx actor.Context) Reply {
	snapshots := make([]Snapshot, 0, len(c.rooms))
	for _, pid := range c.rooms {
		res, err := ctx.Engine().Ask(pid, snapshotRequest{}, c.cfg.AskTimeout)
		if err != nil {
			continue
		}
		if snap, ok := res.(*Snapshot); ok && snap.Open {
			snapshots = append(snapshots, *snap)
		}
	}
	return Reply{Value: snapshots}
}

func (c *RoomsController) handleCreate(ctx actor.Context, msg CreateRoom) Reply {
	key := normalizeName(msg.Name)
	if key == "" || len(msg.Name) > c.cfg.RoomNameMaxLen {
		return Reply{ErrCode: "bad_name"}
	}
	if _, exists := c.rooms[key]; exists {
		return Reply{ErrCode: "name_taken"}
	}

	label := fmt.Sprintf("room-%s", key)
	pid := ctx.Engine().Spawn(actor.NewProps(NewProducer(msg.Name, c.cfg, c.self, c.spawner, c.log)), label)
	c.rooms[key] = pid

	reply := c.joinAndTrack(ctx, pid, JoinRoom{
		Name:       msg.Name,
		PlayerName: msg.PlayerName,
		Color:      msg.Color,
		SessionID:  msg.SessionID,
		SessionPID: msg.SessionPID,
	})
	if reply.ErrCode != "" {
		ctx.Engine().Stop(pid)
		delete(c.rooms, key)
	}
	return reply
}

func (c *RoomsController) handleJoinExisting(ctx actor.Context, msg JoinRoom) Reply {
	pid, ok := c.rooms[normalizeName(msg.Name)]
	if !ok {
		return Reply{ErrCode: "room_not_found"}
	}
	return c.joinAndTrack(ctx, pid, msg)
}

func (c *RoomsController) joinAndTrack(ctx actor.Context, roomPID *actor.PID, msg JoinRoom) Reply {
	res, err := ctx.Engine().Ask(roomPID, msg, c.cfg.AskTimeout)
	if err != nil {
		return Reply{ErrCode: "internal"}
	}
	reply, ok := res.(Reply)
	if !ok {
		return Reply{ErrCode: "internal"}
	}
	if reply.ErrCode == "" {
		c.sessionRoom[msg.SessionID] = roomPID
	}
	return reply
}

func (c *RoomsController) forwardToCurrentRoom(ctx actor.Context, sessionID string, msg interface{}) Reply {
	pid, ok := c.sessionRoom[sessionID]
	if !ok {
		return Reply{ErrCode: "not_in_room"}
	}
	res, err := ctx.Engine().Ask(pid, msg, c.cfg.AskTimeout)
	if err != nil {
		return Reply{ErrCode: "internal"}
	}
	reply, ok := res.(Reply)
	if !ok {
		return Reply{ErrCode: "internal"}
	}
	if _, isLeave := msg.(LeaveRoom); isLeave && reply.ErrCode == "" {
		delete(c.sessionRoom, sessionID)
	}
	return reply
}

// Route implements session.Router, decoding the wire payload for each
// lobby event name and forwarding it into the actor mailbox via Ask so the
// controller's own goroutine remains the only thing touching its state.
func (c *RoomsController) Route(sessionID string, sessionPID *actor.PID, name string, data []byte) (interface{}, string) {
	engine := c.engineFor()
	switch name {
	case "room:fetch":
		res, err := engine.Ask(c.self, FetchRooms{}, c.cfg.AskTimeout)
		return askToResult(res, err)

	case "room:create":
		var payload struct {
			Name       string                 `json:"name"`
			PlayerName string                 `json:"playerName"`
			Color      string                 `json:"color"`
			Config     map[string]interface{} `json:"config"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, "bad_input"
		}
		res, err := engine.Ask(c.self, CreateRoom{
			Name: payload.Name, PlayerName: payload.PlayerName, Color: payload.Color,
			Config: payload.Config, SessionID: sessionID, SessionPID: sessionPID,
		}, c.cfg.AskTimeout)
		return replyResult(res, err)

	case "room:join":
		var payload struct {
			Name       string `json:"name"`
			PlayerName string `json:"playerName"`
			Color      string `json:"color"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, "bad_input"
		}
		res, err := engine.Ask(c.self, JoinRoom{
			Name: payload.Name, PlayerName: payload.PlayerName, Color: payload.Color,
			SessionID: sessionID, SessionPID: sessionPID,
		}, c.cfg.AskTimeout)
		return replyResult(res, err)

	case "room:leave":
		res, err := engine.Ask(c.self, LeaveRoom{SessionID: sessionID}, c.cfg.AskTimeout)
		return replyResult(res, err)

	case "player:ready":
		var payload struct {
			Ready bool `json:"ready"`
		}
		_ = json.Unmarshal(data, &payload)
		res, err := engine.Ask(c.self, SetReady{SessionID: sessionID, Ready: payload.Ready}, c.cfg.AskTimeout)
		return replyResult(res, err)

	case "room:config":
		var payload struct {
			Key   string      `json:"key"`
			Value interface{} `json:"value"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, "bad_input"
		}
		res, err := engine.Ask(c.self, SetConfig{SessionID: sessionID, Key: payload.Key, Value: payload.Value}, c.cfg.AskTimeout)
		return replyResult(res, err)

	case "room:start":
		res, err := engine.Ask(c.self, StartRoom{SessionID: sessionID}, c.cfg.AskTimeout)
		return replyResult(res, err)

	case "player:move":
		var payload struct {
			Turn int `json:"turn"`
		}
		if err := json.Unmarshal(data, &payload); err == nil {
			engine.Send(c.self, PlayerMoveEvent{SessionID: sessionID, Turn: payload.Turn}, nil)
		}
		return nil, ""

	default:
		return nil, "unknown_event"
	}
}

// Disconnected is called by internal/httpapi when a session's socket
// closes, so its room seat is released exactly as room:leave would.
func (c *RoomsController) Disconnected(sessionID string) {
	c.engineFor().Send(c.self, SessionDisconnected{SessionID: sessionID}, nil)
}

func (c *RoomsController) engineFor() *actor.Engine {
	return c.engine
}

func askToResult(res interface{}, err error) (interface{}, string) {
	if err != nil {
		return nil, "internal"
	}
	reply, ok := res.(Reply)
	if !ok {
		return nil, "internal"
	}
	return reply.Value, reply.ErrCode
}

func replyResult(res interface{}, err error) (interface{}, string) {
	if err != nil {
		return nil, "internal"
	}
	reply, ok := res.(Reply)
	if !ok {
		return nil, "internal"
	}
	if reply.Room != nil {
		return reply.Room, reply.ErrCode
	}
	return nil, reply.ErrCode
}
