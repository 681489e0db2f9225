package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_Lifecycle(t *testing.T) {
	t.Parallel()

	sm := NewSessionManager()
	assert.Equal(t, 0, sm.Count())

	sess := sm.CreateSession("p1")
	require.NotNil(t, sess)
	assert.Equal(t, 1, sm.Count())
	assert.Empty(t, sess.GetRoom())

	// Bind on room join
	sm.Bind("p1", "Alice", "ABC123")
	assert.Equal(t, "ABC123", sm.GetSession("p1").GetRoom())

	// Unbind on room leave, session survives
	sm.Unbind("p1")
	assert.Empty(t, sm.GetSession("p1").GetRoom())
	assert.Equal(t, 1, sm.Count())

	// Delete on disconnect
	sm.DeleteSession("p1")
	assert.Nil(t, sm.GetSession("p1"))
	assert.Equal(t, 0, sm.Count())
}

func TestSessionManager_UnknownPlayer(t *testing.T) {
	t.Parallel()

	sm := NewSessionManager()

	// Operations on unknown players are harmless no-ops
	sm.Bind("ghost", "Ghost", "ABC123")
	sm.Unbind("ghost")
	sm.DeleteSession("ghost")
	assert.Nil(t, sm.GetSession("ghost"))
}
