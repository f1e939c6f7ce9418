package team

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateForm_FirstUserGetsIDOne(t *testing.T) {
	s := NewStore(nil)
	f := DefaultCreateForm()
	f.Name = "Cy"
	f.Email = "c@x.com"

	u, err := f.Create(s)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, RoleRecruiter, u.Role)
	assert.Equal(t, StatusActive, u.Status)
}

func TestCreateForm_IDFollowsMax(t *testing.T) {
	s := NewStore([]User{{ID: 1}, {ID: 3}, {ID: 5}})
	f := CreateForm{Name: "New", Email: "n@x.com", Role: RoleAdmin, Status: StatusPending}

	u, err := f.Create(s)
	require.NoError(t, err)
	assert.Equal(t, int64(6), u.ID)
	assert.Equal(t, 4, s.Len())
}

func TestCreateForm_TrimsNameAndEmail(t *testing.T) {
	s := NewStore(nil)
	f := CreateForm{Name: "  Cy  ", Email: "\tc@x.com ", Role: RoleUser, Status: StatusInactive}

	u, err := f.Create(s)
	require.NoError(t, err)
	assert.Equal(t, "Cy", u.Name)
	assert.Equal(t, "c@x.com", u.Email)
}

func TestCreateForm_RejectsBlankFields(t *testing.T) {
	cases := []CreateForm{
		{Name: "", Email: "a@x.com", Role: RoleUser, Status: StatusActive},
		{Name: "   ", Email: "a@x.com", Role: RoleUser, Status: StatusActive},
		{Name: "Ann", Email: " ", Role: RoleUser, Status: StatusActive},
	}
	for _, f := range cases {
		s := NewStore(nil)
		_, err := f.Create(s)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Name and email are required", verr.Message)
		assert.Equal(t, 0, s.Len())
	}
}

func TestCreateForm_RejectsUnknownChoice(t *testing.T) {
	f := CreateForm{Name: "Ann", Email: "a@x.com", Role: "Owner", Status: StatusActive}
	_, err := f.Create(NewStore(nil))
	assert.ErrorIs(t, err, ErrValidation)
}
