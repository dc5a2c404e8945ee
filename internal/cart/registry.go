package cart

import (
	"context"
	"sync"
	"time"
)

const DefaultIdleTTL = 2 * time.Hour

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Registry owns one Store per session and forgets sessions that stay idle
// longer than the configured TTL.
type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*entry
}

func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	return &Registry{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Get returns the store for sessionID, creating it on first use.
func (r *Registry) Get(sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		e = &entry{store: NewStore()}
		r.entries[sessionID] = e
	}
	e.lastSeen = r.now()

	return e.store, nil
}

func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, sessionID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Sweep removes idle sessions and reports how many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	dropped := 0
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.entries, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
