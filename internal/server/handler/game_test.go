package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escapetogether/escape-together/internal/protocol"
	"github.com/escapetogether/escape-together/internal/testutil"
)

// setupRoom creates a room with a host and one guest and returns both.
func setupRoom(t *testing.T, f *testFixture) (host, guest *testutil.SimpleClient) {
	t.Helper()

	host = testutil.NewSimpleClient("p1", "")
	guest = testutil.NewSimpleClient("p2", "")

	f.handler.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
		PlayerName: "Alice",
	}))
	require.NotEmpty(t, host.GetRoom())

	f.handler.Handle(guest, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomCode:   host.GetRoom(),
		PlayerName: "Bob",
	}))
	require.NotEmpty(t, guest.GetRoom())

	host.Reset()
	guest.Reset()
	return host, guest
}

func TestHandlePlayerMove(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	host, guest := setupRoom(t, f)

	f.handler.Handle(host, protocol.MustNewMessage(protocol.MsgPlayerMove, protocol.PlayerMovePayload{
		Position: &protocol.Position{X: 250, Y: 80},
	}))

	// Only the other player hears about the move
	assert.Empty(t, host.MessagesOfType(protocol.MsgPlayerMoved))
	msgs := guest.MessagesOfType(protocol.MsgPlayerMoved)
	require.Len(t, msgs, 1)

	payload, err := protocol.ParsePayload[protocol.PlayerMovedPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, "p1", payload.PlayerID)
	assert.Equal(t, protocol.Position{X: 250, Y: 80}, payload.Position)
}

func TestHandlePlayerMove_MissingPosition(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	host, _ := setupRoom(t, f)

	f.handler.Handle(host, protocol.MustNewMessage(protocol.MsgPlayerMove, protocol.PlayerMovePayload{}))

	last := host.LastMessage()
	require.NotNil(t, last)
	assert.Equal(t, protocol.MsgError, last.Type)
	assert.Equal(t, "Position must contain numeric x and y", last.Message)
}

func TestHandlePlayerMove_NotInRoom(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	stranger := testutil.NewSimpleClient("p9", "")

	f.handler.Handle(stranger, protocol.MustNewMessage(protocol.MsgPlayerMove, protocol.PlayerMovePayload{
		Position: &protocol.Position{X: 1, Y: 1},
	}))

	last := stranger.LastMessage()
	require.NotNil(t, last)
	assert.Equal(t, protocol.MsgError, last.Type)
	assert.Equal(t, "You are not in a room", last.Message)
}

func TestHandlePlayerInteract(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	host, guest := setupRoom(t, f)

	f.handler.Handle(guest, protocol.MustNewMessage(protocol.MsgPlayerInteract, protocol.PlayerInteractPayload{
		ObjectID:        "lever-1",
		InteractionType: "pull",
	}))

	// Interactions reach everyone, the actor included
	for _, c := range []*testutil.SimpleClient{host, guest} {
		msgs := c.MessagesOfType(protocol.MsgPlayerInteracted)
		require.Len(t, msgs, 1)

		payload, err := protocol.ParsePayload[protocol.PlayerInteractedPayload](msgs[0])
		require.NoError(t, err)
		assert.Equal(t, "p2", payload.PlayerID)
		assert.Equal(t, "lever-1", payload.ObjectID)
		assert.Equal(t, "pull", payload.InteractionType)
		assert.NotZero(t, payload.Timestamp)
	}
}

func TestHandlePlayerInteract_MissingFields(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	host, guest := setupRoom(t, f)

	f.handler.Handle(host, protocol.MustNewMessage(protocol.MsgPlayerInteract, protocol.PlayerInteractPayload{
		ObjectID: "lever-1",
	}))

	last := host.LastMessage()
	require.NotNil(t, last)
	assert.Equal(t, protocol.MsgError, last.Type)
	assert.Equal(t, "Object id and interaction type are required", last.Message)
	assert.Empty(t, guest.MessagesOfType(protocol.MsgPlayerInteracted))
}

func TestHandleGameStart_HostOnly(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	host, guest := setupRoom(t, f)

	// Guest cannot start
	f.handler.Handle(guest, &protocol.Message{Type: protocol.MsgGameStart})
	last := guest.LastMessage()
	require.NotNil(t, last)
	assert.Equal(t, protocol.MsgError, last.Type)
	assert.Equal(t, "Only the host can start the game", last.Message)

	// Host can
	f.handler.Handle(host, &protocol.Message{Type: protocol.MsgGameStart})
	assert.Len(t, host.MessagesOfType(protocol.MsgGameStarted), 1)
	assert.Len(t, guest.MessagesOfType(protocol.MsgGameStarted), 1)

	// Starting twice fails
	f.handler.Handle(host, &protocol.Message{Type: protocol.MsgGameStart})
	last = host.LastMessage()
	assert.Equal(t, protocol.MsgError, last.Type)
	assert.Equal(t, "Game has already started", last.Message)
}

func TestHandleGameReset(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	host, guest := setupRoom(t, f)

	f.handler.Handle(host, &protocol.Message{Type: protocol.MsgGameStart})
	f.handler.Handle(host, &protocol.Message{Type: protocol.MsgGameReset})

	assert.Len(t, guest.MessagesOfType(protocol.MsgGameReset), 1)

	// Game can be started again after a reset
	f.handler.Handle(host, &protocol.Message{Type: protocol.MsgGameStart})
	assert.Len(t, guest.MessagesOfType(protocol.MsgGameStarted), 2)
}

func TestHandleDoorStateChange(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	host, guest := setupRoom(t, f)

	f.handler.Handle(guest, protocol.MustNewMessage(protocol.MsgDoorStateChange, protocol.DoorStateChangePayload{
		DoorID: "door-2",
		IsOpen: true,
	}))

	msgs := host.MessagesOfType(protocol.MsgDoorStateChange)
	require.Len(t, msgs, 1)

	payload, err := protocol.ParsePayload[protocol.DoorStateChangePayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, "door-2", payload.DoorID)
	assert.True(t, payload.IsOpen)
	assert.Equal(t, "p2", payload.ChangedBy)
}

func TestHandleDoorStateChange_MissingDoorID(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	host, _ := setupRoom(t, f)

	f.handler.Handle(host, protocol.MustNewMessage(protocol.MsgDoorStateChange, protocol.DoorStateChangePayload{}))

	last := host.LastMessage()
	require.NotNil(t, last)
	assert.Equal(t, protocol.MsgError, last.Type)
	assert.Equal(t, "Door id is required", last.Message)
}

func TestHandlePing(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	client := testutil.NewSimpleClient("p1", "")

	f.handler.Handle(client, &protocol.Message{Type: protocol.MsgPing})

	msgs := client.MessagesOfType(protocol.MsgPong)
	require.Len(t, msgs, 1)

	payload, err := protocol.ParsePayload[protocol.PongPayload](msgs[0])
	require.NoError(t, err)
	assert.NotZero(t, payload.Timestamp)
}
