package session

import (
	"encoding/json"
	"time"

	"golang.org/x/net/websocket"

	"github.com/bokeefe123/modaltron/actor"
	"github.com/bokeefe123/modaltron/internal/wire"
)

const readTimeout = 90 * time.Second

// readLoop blocks on the connection, forwarding every frame (or terminal
// error) back to the session's own mailbox — mirroring
// ConnectionHandlerActor.readLoop's pattern of never touching actor state
// from this goroutine directly.
func (s *Session) readLoop() {
	defer close(s.readExited)

	for {
		select {
		case <-s.stopRead:
			return
		default:
		}

		var raw string
		if s.conn == nil {
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(readTimeout))
		err := websocket.Message.Receive(s.conn, &raw)
		_ = s.conn.SetReadDeadline(time.Time{})

		if err != nil {
			select {
			case <-s.stopRead:
			default:
				s.engine.Send(s.self, internalReadResult{err: err}, nil)
			}
			return
		}

		s.engine.Send(s.self, internalReadResult{frame: []byte(raw)}, nil)
	}
}

// pingLoop sends a ping event roughly every pingInterval, per §4.1/§6.
func (s *Session) pingLoop() {
	interval := s.pingInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopPing:
			return
		case <-ticker.C:
			s.engine.Send(s.self, pingTick{}, nil)
		}
	}
}

func (s *Session) sendPing() {
	s.lastPingSentAt = time.Now()
	s.write(encodeSingleEvent("ping", s.lastPingSentAt.UnixMilli()))
}

// handleInboundFrame decodes one inbound frame and routes every event in
// it, coalescing all resulting ack responses into a single outbound frame
// (§4.1: writes within one tick/batch are one JSON-array write).
func (s *Session) handleInboundFrame(raw []byte) {
	events, _, err := wire.Decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("session", s.ID).Msg("dropping malformed inbound frame")
		return
	}

	var out wire.Builder
	for _, ev := range events {
		switch ev.Name {
		case "whoami":
			out.AddAck(ev.AckID, "", s.ID)
			continue
		case "pong":
			var echoed int64
			_ = json.Unmarshal(ev.Data, &echoed)
			s.engine.Send(s.self, internalPongReceived{echoedMillis: echoed}, nil)
			continue
		}

		result, ackErr := s.router.Route(s.ID, s.self, ev.Name, ev.Data)
		if ev.AckID > 0 {
			out.AddAck(ev.AckID, ackErr, result)
		}
	}

	if out.Len() > 0 {
		frame, err := out.Encode()
		if err == nil {
			s.write(frame)
		}
	}
}

func (s *Session) write(frame []byte) {
	if s.conn == nil {
		return
	}
	_ = websocket.Message.Send(s.conn, string(frame))
}

func (s *Session) closeConn() {
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

func (s *Session) signalAndWaitForRead() {
	select {
	case <-s.stopRead:
		return
	default:
		close(s.stopRead)
	}
	s.closeConn()
	select {
	case <-s.readExited:
	case <-time.After(2 * time.Second):
	}
}

func (s *Session) cleanup(ctx actor.Context, reason error) {
	s.log.Debug().Str("session", s.ID).Err(reason).Msg("session cleanup")
	s.signalAndWaitForRead()
	if s.engine != nil && s.self != nil {
		s.engine.Stop(s.self)
	}
}

func encodeSingleEvent(name string, data interface{}) []byte {
	var b wire.Builder
	b.AddEvent(name, data, 0)
	frame, _ := b.Encode()
	return frame
}
