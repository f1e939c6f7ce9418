package team

import (
	"sync"
	"time"
)

// DefaultLoadingDelay is how long the table shows its loading state after the store changes.
const DefaultLoadingDelay = 500 * time.Millisecond

// LoadingGate tracks the transient loading display. Each Trigger supersedes the pending one;
// only the most recently armed timer can end the loading state.
type LoadingGate struct {
	mu         sync.Mutex
	delay      time.Duration
	generation uint64
	timer      *time.Timer
	loading    bool
	until      time.Time
}

func NewLoadingGate(delay time.Duration) *LoadingGate {
	if delay < 0 {
		delay = 0
	}
	return &LoadingGate{delay: delay}
}

// Trigger enters the loading state and arms a fresh timer.
func (g *LoadingGate) Trigger() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
	}
	g.generation++
	gen := g.generation
	g.loading = true
	g.until = time.Now().Add(g.delay)
	g.timer = time.AfterFunc(g.delay, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.generation != gen {
			return
		}
		g.loading = false
		g.timer = nil
	})
}

func (g *LoadingGate) Loading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loading
}

// Remaining is the time left before the loading state ends, or zero.
func (g *LoadingGate) Remaining() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.loading {
		return 0
	}
	return max(time.Until(g.until), 0)
}

// Generation counts the triggers so far.
func (g *LoadingGate) Generation() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generation
}

// Stop cancels any pending timer and clears the loading state.
func (g *LoadingGate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.generation++
	g.loading = false
}
