package cache

import (
	"testing"
	"time"

	"teamdash/team"
)

func TestWorkspaceCache_AddFindDelete(t *testing.T) {
	c := NewWorkspaceCache()
	ws := team.NewWorkspace("tok-1", nil, time.Millisecond)
	c.Add(ws)

	got, ok := c.Find("tok-1")
	if !ok || got != ws {
		t.Fatalf("expected cached workspace, got %v %v", got, ok)
	}
	if _, ok := c.Find("missing"); ok {
		t.Fatalf("expected miss for unknown token")
	}

	c.Delete("tok-1")
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d", c.Len())
	}
}

func TestWorkspaceCache_SweepRemovesIdle(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewWorkspaceCache()
	c.now = func() time.Time { return now }

	c.Add(team.NewWorkspace("old", nil, time.Millisecond))
	now = now.Add(2 * time.Hour)
	c.Add(team.NewWorkspace("fresh", nil, time.Millisecond))

	if removed := c.Sweep(time.Hour); removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, ok := c.Find("old"); ok {
		t.Fatalf("expected old workspace to be swept")
	}
	if _, ok := c.Find("fresh"); !ok {
		t.Fatalf("expected fresh workspace to survive")
	}
}

func TestWorkspaceCache_FindRefreshesLastSeen(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewWorkspaceCache()
	c.now = func() time.Time { return now }

	c.Add(team.NewWorkspace("busy", nil, time.Millisecond))
	now = now.Add(50 * time.Minute)
	c.Find("busy")
	now = now.Add(50 * time.Minute)

	if removed := c.Sweep(time.Hour); removed != 0 {
		t.Fatalf("expected recently used workspace to survive, removed %d", removed)
	}
}

func TestWorkspaceCache_CloseEmptiesCache(t *testing.T) {
	c := NewWorkspaceCache()
	c.Add(team.NewWorkspace("tok-a", nil, time.Millisecond))
	c.Add(team.NewWorkspace("tok-b", nil, time.Millisecond))

	c.Close()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after close, got %d", c.Len())
	}
}
