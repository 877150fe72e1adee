package casinotable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/casinotable/model"
)

func TestSessions_BindAndUnbind(t *testing.T) {
	sessions := NewSessions()

	require.NoError(t, sessions.Bind(Binding{ConnID: "c1", TableID: "t1", Role: model.Role_Croupier}))
	require.NoError(t, sessions.Bind(Binding{ConnID: "p1", TableID: "t1", Role: model.Role_Player}))
	require.NoError(t, sessions.Bind(Binding{ConnID: "p2", TableID: "t1", Role: model.Role_Player}))

	assert.ErrorIs(t, sessions.Bind(Binding{ConnID: "p1", TableID: "t2"}), model.ErrAlreadySeated)
	assert.Equal(t, []string{"c1", "p1", "p2"}, sessions.Occupants("t1"))

	b, ok := sessions.Unbind("p1")
	require.True(t, ok)
	assert.Equal(t, model.Role_Player, b.Role)
	assert.Equal(t, []string{"c1", "p2"}, sessions.Occupants("t1"))

	_, ok = sessions.Unbind("p1")
	assert.False(t, ok)

	_, ok = sessions.Get("p1")
	assert.False(t, ok)
	assert.Equal(t, 2, sessions.Count())
}

func TestSessions_UnbindTable(t *testing.T) {
	sessions := NewSessions()
	require.NoError(t, sessions.Bind(Binding{ConnID: "c1", TableID: "t1"}))
	require.NoError(t, sessions.Bind(Binding{ConnID: "p1", TableID: "t1"}))
	require.NoError(t, sessions.Bind(Binding{ConnID: "p9", TableID: "t2"}))

	dropped := sessions.UnbindTable("t1")
	require.Len(t, dropped, 2)
	assert.Equal(t, "c1", dropped[0].ConnID)
	assert.Equal(t, "p1", dropped[1].ConnID)

	assert.Empty(t, sessions.Occupants("t1"))
	assert.Equal(t, []string{"p9"}, sessions.Occupants("t2"))
	assert.Equal(t, 1, sessions.Count())
}
