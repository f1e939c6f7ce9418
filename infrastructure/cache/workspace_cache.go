package cache

import (
	"sync"
	"time"

	"teamdash/team"
)

type workspaceEntry struct {
	ws       *team.Workspace
	lastSeen time.Time
}

// WorkspaceCache stores dashboard workspaces by token.
type WorkspaceCache struct {
	mu         sync.RWMutex
	workspaces map[string]*workspaceEntry
	now        func() time.Time
}

func NewWorkspaceCache() *WorkspaceCache {
	return &WorkspaceCache{
		workspaces: make(map[string]*workspaceEntry),
		now:        time.Now,
	}
}

func (c *WorkspaceCache) Add(ws *team.Workspace) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.workspaces[ws.ID]; ok && old.ws != ws {
		old.ws.Close()
	}
	c.workspaces[ws.ID] = &workspaceEntry{ws: ws, lastSeen: c.now()}
}

// Find returns the workspace for token and marks it as seen.
func (c *WorkspaceCache) Find(token string) (*team.Workspace, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.workspaces[token]
	if !ok {
		return nil, false
	}
	e.lastSeen = c.now()
	return e.ws, true
}

func (c *WorkspaceCache) Delete(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.workspaces[token]; ok {
		e.ws.Close()
		delete(c.workspaces, token)
	}
}

// Sweep drops workspaces idle for longer than ttl and returns how many were removed.
func (c *WorkspaceCache) Sweep(ttl time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	cutoff := c.now().Add(-ttl)
	removed := 0
	for token, e := range c.workspaces {
		if e.lastSeen.Before(cutoff) {
			e.ws.Close()
			delete(c.workspaces, token)
			removed++
		}
	}
	return removed
}

func (c *WorkspaceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.workspaces)
}

// Close stops every workspace and empties the cache.
func (c *WorkspaceCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for token, e := range c.workspaces {
		e.ws.Close()
		delete(c.workspaces, token)
	}
}
