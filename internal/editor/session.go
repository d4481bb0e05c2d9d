// Package editor implements the dashboard's draft-versus-saved editing model:
// a baseline mirroring the last persisted value, a draft accumulating local
// mutations, a structural dirty flag, and a single explicit commit point.
// There is no autosave; a failed save never loses the draft.
package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrEditInProgress   = errors.New("another item is already being edited")
	ErrNoEditInProgress = errors.New("no item is being edited")
	ErrItemNotFound     = errors.New("item not found in draft")
	ErrNoDeleteRequest  = errors.New("no matching delete request")
	ErrNotLoaded        = errors.New("session has not been loaded")
)

// Session tracks one editing surface over a value of type T (a slice of the
// tenant record, e.g. the contact section). Reachable states are
// {clean,dirty} x {idle,saving}; saving is entered only from dirty x idle.
//
// Baseline changes only via Load or a successful Save. Draft changes only via
// Load, Mutate, Discard or a successful Save. Remote updates are never merged
// into a loaded session; mid-edit resync would clobber local work.
type Session[T any] struct {
	mu       sync.Mutex
	baseline T
	draft    T
	saving   bool
	loaded   bool
}

func NewSession[T any]() *Session[T] {
	return &Session[T]{}
}

// Load seeds both baseline and draft with deep copies of v.
func (s *Session[T]) Load(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseline = clone(v)
	s.draft = clone(v)
	s.loaded = true
}

// Loaded reports whether Load has been called.
func (s *Session[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Mutate applies fn to the draft. Baseline is never touched.
func (s *Session[T]) Mutate(fn func(*T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	fn(&s.draft)
	return nil
}

// Draft returns a deep copy of the current draft.
func (s *Session[T]) Draft() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.draft)
}

// Baseline returns a deep copy of the last persisted value.
func (s *Session[T]) Baseline() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.baseline)
}

// IsDirty reports whether the draft structurally differs from the baseline.
func (s *Session[T]) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !structurallyEqual(s.draft, s.baseline)
}

// Saving reports whether a save is in flight.
func (s *Session[T]) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// Save commits the draft through write. A clean session or an in-flight save
// makes it a no-op (saved == false, err == nil). On success the baseline
// becomes the draft snapshot that was written. On failure draft and baseline
// are left untouched so the caller can retry.
func (s *Session[T]) Save(ctx context.Context, write func(context.Context, T) error) (saved bool, err error) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return false, ErrNotLoaded
	}
	if s.saving || structurallyEqual(s.draft, s.baseline) {
		s.mu.Unlock()
		return false, nil
	}
	s.saving = true
	snapshot := clone(s.draft)
	s.mu.Unlock()

	err = write(ctx, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		return false, err
	}
	s.baseline = snapshot
	return true, nil
}

// Discard reverts the draft to the baseline.
func (s *Session[T]) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = clone(s.baseline)
}

// clone deep-copies v through a JSON round trip. Session values are tenant
// record slices, which are all JSON-representable.
func clone[T any](v T) T {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("editor: value not serializable: %v", err))
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		panic(fmt.Sprintf("editor: value not round-trippable: %v", err))
	}
	return out
}

// structurallyEqual compares serialized forms, making the check independent
// of map key order and object identity.
func structurallyEqual[T any](a, b T) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}
