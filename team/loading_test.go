package team

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadingGate_ClearsAfterDelay(t *testing.T) {
	g := NewLoadingGate(20 * time.Millisecond)
	assert.False(t, g.Loading())

	g.Trigger()
	assert.True(t, g.Loading())
	assert.Eventually(t, func() bool { return !g.Loading() }, time.Second, 5*time.Millisecond)
	assert.Zero(t, g.Remaining())
}

func TestLoadingGate_LatestTriggerWins(t *testing.T) {
	g := NewLoadingGate(80 * time.Millisecond)

	g.Trigger()
	time.Sleep(50 * time.Millisecond)
	g.Trigger()
	time.Sleep(50 * time.Millisecond)

	// The first timer would have fired by now; the second one is still pending.
	assert.True(t, g.Loading())
	assert.Equal(t, uint64(2), g.Generation())
	assert.Eventually(t, func() bool { return !g.Loading() }, time.Second, 5*time.Millisecond)
}

func TestLoadingGate_Stop(t *testing.T) {
	g := NewLoadingGate(time.Hour)
	g.Trigger()
	assert.True(t, g.Loading())
	assert.Greater(t, g.Remaining(), time.Duration(0))

	g.Stop()
	assert.False(t, g.Loading())
}
