package wire_test

import (
	"encoding/json"
	"testing"

	"github.com/bokeefe123/modaltron/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeThenDecodeRoundTripsEvents(t *testing.T) {
	var b wire.Builder
	b.AddEvent("whoami", nil, 0)
	b.AddEvent("position", map[string]float64{"x": 1.5, "y": 2}, 0)
	b.AddAck(7, "", "S1")

	frame, err := b.Encode()
	require.NoError(t, err)

	events, acks, err := wire.Decode(frame)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Len(t, acks, 1)

	assert.Equal(t, "whoami", events[0].Name)
	assert.Equal(t, "position", events[1].Name)
	assert.Equal(t, 7, acks[0].AckID)
	assert.Empty(t, acks[0].ErrCode)

	var result string
	require.NoError(t, json.Unmarshal(acks[0].Result, &result))
	assert.Equal(t, "S1", result)
}

func TestDecodeEventWithAckID(t *testing.T) {
	frame := []byte(`[["room:create", {"name":"lobby"}, 3]]`)
	events, acks, err := wire.Decode(frame)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Empty(t, acks)
	assert.Equal(t, "room:create", events[0].Name)
	assert.Equal(t, 3, events[0].AckID)
}

func TestDecodeAckResponseWithError(t *testing.T) {
	frame := []byte(`[[3, ["name_taken", null]]]`)
	events, acks, err := wire.Decode(frame)
	require.NoError(t, err)
	assert.Empty(t, events)
	require.Len(t, acks, 1)
	assert.Equal(t, "name_taken", acks[0].ErrCode)
}

func TestDecodeRejectsNonArrayFrame(t *testing.T) {
	_, _, err := wire.Decode([]byte(`{"not":"an array"}`))
	assert.Error(t, err)
}
