package editor

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry holds live editing sessions keyed by (user, section). Each section
// edits a different value type, so entries are stored untyped and asserted at
// the handler boundary.
type Registry struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]*registryEntry
}

type registryEntry struct {
	session interface{}
	touched time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:     ttl,
		entries: make(map[string]*registryEntry),
	}
}

func sessionKey(userID uuid.UUID, section string) string {
	return userID.String() + "/" + section
}

// Put stores (replacing any previous) the session for a user's section.
func (r *Registry) Put(userID uuid.UUID, section string, session interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[sessionKey(userID, section)] = &registryEntry{
		session: session,
		touched: time.Now(),
	}
}

// Get returns the live session for a user's section and refreshes its TTL.
func (r *Registry) Get(userID uuid.UUID, section string) (interface{}, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sessionKey(userID, section)]
	if !ok {
		return nil, false
	}
	e.touched = time.Now()
	return e.session, true
}

// Delete drops a session.
func (r *Registry) Delete(userID uuid.UUID, section string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionKey(userID, section))
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// StartSweep evicts sessions idle past the TTL. Abandoned drafts die with
// their session; only an explicit Save ever persists anything.
func (r *Registry) StartSweep(done chan struct{}) {
	go func() {
		ticker := time.NewTicker(r.ttl / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.sweep()
			case <-done:
				return
			}
		}
	}()
}

func (r *Registry) sweep() {
	cutoff := time.Now().Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, e := range r.entries {
		if e.touched.Before(cutoff) {
			delete(r.entries, key)
		}
	}
}
