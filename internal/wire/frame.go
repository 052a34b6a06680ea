// Package wire implements the event-batched JSON frame protocol described
// in §6: every WebSocket frame is a JSON array of events, each either
// `[name, data, ackId?]` or, for an ack response, `[ackId, [err, result]]`.
// Grounded on server/connection_handler.go's websocket.JSON.Receive/Send
// usage, restyled from single-struct frames to the spec's array shape.
package wire

import (
	"encoding/json"
	"fmt"
)

// Event is one inbound or outbound named event. AckID is 0 when no
// acknowledgement was requested (ack ids are positive per §6).
type Event struct {
	Name  string
	Data  json.RawMessage
	AckID int
}

// AckResponse completes a previously received ack-requesting Event.
// ErrCode is empty on success.
type AckResponse struct {
	AckID   int
	ErrCode string
	Result  json.RawMessage
}

// Builder accumulates events and ack responses for a single outbound
// frame, matching the teacher's pattern of coalescing everything emitted
// within one tick into one write (game_actor_state.go's pendingUpdates).
type Builder struct {
	entries []interface{}
}

// AddEvent appends a named event with arbitrary payload data. If ackID is
// non-zero, the client is expected to eventually emit an ack response with
// that id.
func (b *Builder) AddEvent(name string, data interface{}, ackID int) {
	if ackID > 0 {
		b.entries = append(b.entries, []interface{}{name, data, ackID})
	} else {
		b.entries = append(b.entries, []interface{}{name, data})
	}
}

// AddAck appends an ack-response entry completing ackID. errCode is sent as
// null when empty.
func (b *Builder) AddAck(ackID int, errCode string, result interface{}) {
	var errVal interface{}
	if errCode != "" {
		errVal = errCode
	}
	b.entries = append(b.entries, []interface{}{ackID, []interface{}{errVal, result}})
}

// Len reports how many entries are queued.
func (b *Builder) Len() int { return len(b.entries) }

// Encode marshals the accumulated entries as a single JSON array frame and
// resets the builder.
func (b *Builder) Encode() ([]byte, error) {
	frame, err := json.Marshal(b.entries)
	b.entries = nil
	return frame, err
}

// Decode parses a raw inbound frame into its Events and AckResponses. An
// entry whose first element is a JSON string is an Event; an entry whose
// first element is a JSON number is an AckResponse.
func Decode(raw []byte) (events []Event, acks []AckResponse, err error) {
	var rawEntries []json.RawMessage
	if err := json.Unmarshal(raw, &rawEntries); err != nil {
		return nil, nil, fmt.Errorf("wire: frame is not a JSON array: %w", err)
	}

	for _, rawEntry := range rawEntries {
		var parts []json.RawMessage
		if err := json.Unmarshal(rawEntry, &parts); err != nil {
			return nil, nil, fmt.Errorf("wire: entry is not a JSON array: %w", err)
		}
		if len(parts) == 0 {
			return nil, nil, fmt.Errorf("wire: empty entry")
		}

		var asString string
		if err := json.Unmarshal(parts[0], &asString); err == nil {
			ev := Event{Name: asString}
			if len(parts) > 1 {
				ev.Data = parts[1]
			}
			if len(parts) > 2 {
				if err := json.Unmarshal(parts[2], &ev.AckID); err != nil {
					return nil, nil, fmt.Errorf("wire: bad ack id: %w", err)
				}
			}
			events = append(events, ev)
			continue
		}

		var ackID int
		if err := json.Unmarshal(parts[0], &ackID); err != nil {
			return nil, nil, fmt.Errorf("wire: entry first element is neither string nor number")
		}
		if len(parts) < 2 {
			return nil, nil, fmt.Errorf("wire: ack response entry missing [err, result] tuple")
		}
		var tuple []json.RawMessage
		if err := json.Unmarshal(parts[1], &tuple); err != nil || len(tuple) < 2 {
			return nil, nil, fmt.Errorf("wire: malformed ack response tuple")
		}
		ack := AckResponse{AckID: ackID, Result: tuple[1]}
		var errCode string
		if json.Unmarshal(tuple[0], &errCode) == nil {
			ack.ErrCode = errCode
		}
		acks = append(acks, ack)
	}
	return events, acks, nil
}
