package editor

import (
	"sync"
)

// Identifiable is the item contract for collection editing. Services carry a
// generated id; gallery items are keyed by URL.
type Identifiable interface {
	ItemID() string
}

// ListSession specializes Session for an ordered collection with item-level
// editing. At most one item is in edit mode at a time; the open item's
// working copy lives in tempItem, so cancelling an edit leaves the draft
// untouched. Deleting is a two-step request/confirm command so the
// confirmation policy is testable without a dialog.
//
// The edit lock exists only inside this session. Two sessions (two tabs) can
// still open the same item; that remains unguarded.
type ListSession[I Identifiable] struct {
	*Session[[]I]

	mu            sync.Mutex
	editingID     string
	tempItem      *I
	pendingDelete string
}

func NewListSession[I Identifiable]() *ListSession[I] {
	return &ListSession[I]{Session: NewSession[[]I]()}
}

// AddItem prepends item to the draft (the list is dirty immediately) and
// opens it in edit mode. Fails if another item is already open.
func (ls *ListSession[I]) AddItem(item I) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.editingID != "" {
		return ErrEditInProgress
	}
	if err := ls.Session.Mutate(func(items *[]I) {
		*items = append([]I{item}, *items...)
	}); err != nil {
		return err
	}
	temp := clone(item)
	ls.editingID = item.ItemID()
	ls.tempItem = &temp
	return nil
}

// BeginEdit opens the item with the given id. While an item is open, opening
// another is rejected; the caller must commit or cancel first.
func (ls *ListSession[I]) BeginEdit(id string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.editingID != "" {
		return ErrEditInProgress
	}
	for _, item := range ls.Session.Draft() {
		if item.ItemID() == id {
			temp := clone(item)
			ls.editingID = id
			ls.tempItem = &temp
			return nil
		}
	}
	return ErrItemNotFound
}

// EditingID returns the id of the item in edit mode, or "".
func (ls *ListSession[I]) EditingID() string {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.editingID
}

// Temp returns the working copy of the open item.
func (ls *ListSession[I]) Temp() (I, bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	var zero I
	if ls.tempItem == nil {
		return zero, false
	}
	return clone(*ls.tempItem), true
}

// UpdateTemp mutates the working copy only. The draft stays untouched until
// CommitEdit.
func (ls *ListSession[I]) UpdateTemp(fn func(*I)) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.tempItem == nil {
		return ErrNoEditInProgress
	}
	fn(ls.tempItem)
	return nil
}

// CommitEdit replaces the matching draft item with the working copy and
// closes edit mode. Persistence still waits for the outer Save.
func (ls *ListSession[I]) CommitEdit() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.editingID == "" || ls.tempItem == nil {
		return ErrNoEditInProgress
	}
	id := ls.editingID
	temp := clone(*ls.tempItem)
	if err := ls.Session.Mutate(func(items *[]I) {
		for i := range *items {
			if (*items)[i].ItemID() == id {
				(*items)[i] = temp
				return
			}
		}
	}); err != nil {
		return err
	}
	ls.editingID = ""
	ls.tempItem = nil
	return nil
}

// CancelEdit closes edit mode. The draft was never mutated, so the item keeps
// its pre-edit value.
func (ls *ListSession[I]) CancelEdit() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.editingID == "" {
		return ErrNoEditInProgress
	}
	ls.editingID = ""
	ls.tempItem = nil
	return nil
}

// RequestDelete records intent to delete the item. Nothing is removed until
// ConfirmDelete with the same id.
func (ls *ListSession[I]) RequestDelete(id string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	for _, item := range ls.Session.Draft() {
		if item.ItemID() == id {
			ls.pendingDelete = id
			return nil
		}
	}
	return ErrItemNotFound
}

// ConfirmDelete removes the item from the draft. Fails without a matching
// prior RequestDelete. Deleting the item currently in edit mode also closes
// the edit.
func (ls *ListSession[I]) ConfirmDelete(id string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.pendingDelete == "" || ls.pendingDelete != id {
		return ErrNoDeleteRequest
	}
	ls.pendingDelete = ""
	if err := ls.Session.Mutate(func(items *[]I) {
		out := (*items)[:0]
		for _, item := range *items {
			if item.ItemID() != id {
				out = append(out, item)
			}
		}
		*items = out
	}); err != nil {
		return err
	}
	if ls.editingID == id {
		ls.editingID = ""
		ls.tempItem = nil
	}
	return nil
}

// AppendBatch appends items to the end of the draft in one step. Used by the
// gallery bulk upload: files upload immediately, persistence still waits for
// the single outer Save.
func (ls *ListSession[I]) AppendBatch(items []I) error {
	return ls.Session.Mutate(func(draft *[]I) {
		*draft = append(*draft, items...)
	})
}
