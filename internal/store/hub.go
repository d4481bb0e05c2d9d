package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ozanatli/microsite-backend/internal/models"
)

// hub fans out tenant updates to in-process subscribers. Callbacks receive a
// clone, never shared state. Delivery is synchronous with the publishing
// write, matching the push-based subscription contract.
type hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[uuid.UUID]map[int]func(*models.Tenant)
}

func newHub() *hub {
	return &hub{subs: make(map[uuid.UUID]map[int]func(*models.Tenant))}
}

// subscribe registers fn for updates to tenant id. The caller is responsible
// for delivering the current value first. The returned func is idempotent.
func (h *hub) subscribe(id uuid.UUID, fn func(*models.Tenant)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	subID := h.nextID
	if h.subs[id] == nil {
		h.subs[id] = make(map[int]func(*models.Tenant))
	}
	h.subs[id][subID] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[id], subID)
			if len(h.subs[id]) == 0 {
				delete(h.subs, id)
			}
		})
	}
}

func (h *hub) publish(t *models.Tenant) {
	h.mu.Lock()
	fns := make([]func(*models.Tenant), 0, len(h.subs[t.ID]))
	for _, fn := range h.subs[t.ID] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(t.Clone())
	}
}
