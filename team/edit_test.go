package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoUserStore() *Store {
	return NewStore([]User{
		{ID: 1, Name: "Ann", Email: "ann@x.com", Role: RoleAdmin, Status: StatusActive},
		{ID: 2, Name: "Ben", Email: "ben@x.com", Role: RoleUser, Status: StatusPending},
	})
}

func TestEditState_ZeroValueIsIdle(t *testing.T) {
	var e EditState
	_, editing := e.Editing()
	assert.False(t, editing)
	assert.False(t, e.Locked(1))
	assert.False(t, e.Editable(1))
}

func TestEditState_BeginCopiesRecord(t *testing.T) {
	s := twoUserStore()
	u, _ := s.Get(2)

	e, err := Idle().Begin(u)
	require.NoError(t, err)
	id, editing := e.Editing()
	assert.True(t, editing)
	assert.Equal(t, int64(2), id)
	assert.Equal(t, Scratch{Name: "Ben", Email: "ben@x.com", Role: RoleUser, Status: StatusPending}, e.Scratch())
	assert.True(t, e.Editable(2))
	assert.True(t, e.Locked(1))
}

func TestEditState_SingleRowOnly(t *testing.T) {
	s := twoUserStore()
	u1, _ := s.Get(1)
	u2, _ := s.Get(2)

	e, err := Idle().Begin(u2)
	require.NoError(t, err)

	_, err = e.Begin(u1)
	assert.ErrorIs(t, err, ErrAlreadyEditing)

	same, err := e.Begin(u2)
	require.NoError(t, err)
	assert.Equal(t, e, same)
}

func TestEditState_CancelLeavesStoreUnchanged(t *testing.T) {
	s := twoUserStore()
	u, _ := s.Get(2)

	e, err := Idle().Begin(u)
	require.NoError(t, err)
	e, err = e.Set(ColumnRole, "Admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, e.Scratch().Role)

	e = e.Cancel()
	_, editing := e.Editing()
	assert.False(t, editing)

	got, _ := s.Get(2)
	assert.Equal(t, RoleUser, got.Role)
}

func TestEditState_SaveCommitsScratch(t *testing.T) {
	s := twoUserStore()
	u, _ := s.Get(2)

	e, err := Idle().Begin(u)
	require.NoError(t, err)
	e, err = e.Set(ColumnStatus, "Inactive")
	require.NoError(t, err)

	stored, _ := s.Get(2)
	assert.Equal(t, StatusPending, stored.Status, "scratch edits must not reach the store before save")

	e = e.Save(s)
	_, editing := e.Editing()
	assert.False(t, editing)

	stored, _ = s.Get(2)
	assert.Equal(t, StatusInactive, stored.Status)
	assert.Equal(t, int64(2), stored.ID)
}

func TestEditState_SetValidatesFields(t *testing.T) {
	s := twoUserStore()
	u, _ := s.Get(1)

	_, err := Idle().Set(ColumnName, "x")
	assert.ErrorIs(t, err, ErrNotEditing)

	e, err := Idle().Begin(u)
	require.NoError(t, err)

	_, err = e.Set(ColumnRole, "Owner")
	assert.ErrorIs(t, err, ErrInvalidRole)
	_, err = e.Set(ColumnStatus, "Gone")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = e.Set(ColumnID, "9")
	assert.ErrorIs(t, err, ErrNotEditable)

	e, err = e.Set(ColumnName, "  Annie ")
	require.NoError(t, err)
	assert.Equal(t, "  Annie ", e.Scratch().Name)
}

func TestEditState_DeleteEditedRowReturnsToIdle(t *testing.T) {
	s := twoUserStore()
	u, _ := s.Get(2)
	e, err := Idle().Begin(u)
	require.NoError(t, err)

	e, err = e.Delete(s, 2, true)
	require.NoError(t, err)
	_, editing := e.Editing()
	assert.False(t, editing)
	_, found := s.Get(2)
	assert.False(t, found)
}

func TestEditState_DeleteOtherRowKeepsEditing(t *testing.T) {
	s := twoUserStore()
	u, _ := s.Get(2)
	e, err := Idle().Begin(u)
	require.NoError(t, err)

	e, err = e.Delete(s, 1, true)
	require.NoError(t, err)
	assert.True(t, e.Editable(2))
	assert.Equal(t, 1, s.Len())
}

func TestEditState_DeleteDeclined(t *testing.T) {
	s := twoUserStore()
	u, _ := s.Get(2)
	e, err := Idle().Begin(u)
	require.NoError(t, err)

	next, err := e.Delete(s, 2, false)
	assert.ErrorIs(t, err, ErrConfirmationDeclined)
	assert.Equal(t, e, next)
	assert.Equal(t, 2, s.Len())
}
