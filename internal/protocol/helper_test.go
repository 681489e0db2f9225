package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage_AndParsePayload(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MsgJoinRoom, JoinRoomPayload{
		RoomCode:   "ABC123",
		PlayerName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, MsgJoinRoom, msg.Type)

	payload, err := ParsePayload[JoinRoomPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", payload.RoomCode)
	assert.Equal(t, "Alice", payload.PlayerName)
}

func TestParsePayload_EmptyData(t *testing.T) {
	t.Parallel()

	// Messages like leave_room carry no data; parsing yields the zero value
	payload, err := ParsePayload[JoinRoomPayload](&Message{Type: MsgLeaveRoom})
	require.NoError(t, err)
	assert.Empty(t, payload.RoomCode)
}

func TestEncodeDecode_WireFormat(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(MsgPlayerMove, PlayerMovePayload{
		Position: &Position{X: 10, Y: 20},
	})

	data, err := msg.Encode()
	require.NoError(t, err)

	// Wire format uses camelCase keys inside a {type, data} envelope
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "type")
	assert.Contains(t, raw, "data")
	assert.NotContains(t, raw, "message")
	assert.JSONEq(t, `{"position":{"x":10,"y":20}}`, string(raw["data"]))

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgPlayerMove, decoded.Type)
}

func TestDecode_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(ErrCodeRoomNotFound)
	assert.Equal(t, MsgError, msg.Type)
	assert.Equal(t, "Room not found", msg.Message)

	// Errors ride in the top-level message field, not in data
	data, err := msg.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","message":"Room not found"}`, string(data))
}

func TestNewErrorMessageWithText(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessageWithText("Only the host can start the game")
	assert.Equal(t, MsgError, msg.Type)
	assert.Equal(t, "Only the host can start the game", msg.Message)
}
