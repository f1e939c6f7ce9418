package team

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeed_Embedded(t *testing.T) {
	users, err := LoadSeed("")
	require.NoError(t, err)
	require.Len(t, users, 12)

	seen := make(map[int64]bool)
	for _, u := range users {
		assert.False(t, seen[u.ID], "duplicate id %d", u.ID)
		seen[u.ID] = true
		_, err := ParseRole(string(u.Role))
		assert.NoError(t, err)
		_, err = ParseStatus(string(u.Status))
		assert.NoError(t, err)
	}
}

func TestLoadSeed_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":3,"name":"Cy","email":"c@x.com","role":"User","status":"Active"}]`), 0o600))

	users, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, []User{{ID: 3, Name: "Cy", Email: "c@x.com", Role: RoleUser, Status: StatusActive}}, users)
}

func TestLoadSeed_Errors(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = ParseSeed([]byte("{not json"))
	assert.Error(t, err)
}
