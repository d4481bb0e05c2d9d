package editor_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ozanatli/microsite-backend/internal/editor"
	"github.com/ozanatli/microsite-backend/internal/models"
)

var errRemote = errors.New("remote write failed")

func TestSession_LoadIsClean(t *testing.T) {
	s := editor.NewSession[models.Contact]()
	s.Load(models.Contact{Phone: "1", Email: "a@x.com"})

	require.False(t, s.IsDirty())
	require.Equal(t, "1", s.Draft().Phone)
	require.Equal(t, "1", s.Baseline().Phone)
}

func TestSession_MutateDirtiesDiscardReverts(t *testing.T) {
	s := editor.NewSession[models.Contact]()
	s.Load(models.Contact{Phone: "1"})

	require.NoError(t, s.Mutate(func(c *models.Contact) { c.Phone = "2" }))
	require.True(t, s.IsDirty())
	require.Equal(t, "1", s.Baseline().Phone, "baseline untouched by mutate")

	s.Discard()
	require.False(t, s.IsDirty())
	require.Equal(t, "1", s.Draft().Phone)
}

func TestSession_MutateBackToBaselineIsClean(t *testing.T) {
	s := editor.NewSession[models.Contact]()
	s.Load(models.Contact{Phone: "1"})

	require.NoError(t, s.Mutate(func(c *models.Contact) { c.Phone = "2" }))
	require.NoError(t, s.Mutate(func(c *models.Contact) { c.Phone = "1" }))
	require.False(t, s.IsDirty(), "structural equality, not edit history")
}

func TestSession_SaveSuccessResetsBaseline(t *testing.T) {
	s := editor.NewSession[models.Contact]()
	s.Load(models.Contact{Phone: "1"})
	require.NoError(t, s.Mutate(func(c *models.Contact) { c.Phone = "2" }))

	var written models.Contact
	saved, err := s.Save(context.Background(), func(_ context.Context, c models.Contact) error {
		written = c
		return nil
	})
	require.NoError(t, err)
	require.True(t, saved)
	require.Equal(t, "2", written.Phone)
	require.False(t, s.IsDirty())
	// Baseline now reflects the saved draft without a reload.
	require.Equal(t, "2", s.Baseline().Phone)
}

func TestSession_SaveFailurePreservesDraft(t *testing.T) {
	s := editor.NewSession[models.Contact]()
	s.Load(models.Contact{Phone: "1"})
	require.NoError(t, s.Mutate(func(c *models.Contact) { c.Phone = "2" }))

	saved, err := s.Save(context.Background(), func(context.Context, models.Contact) error {
		return errRemote
	})
	require.ErrorIs(t, err, errRemote)
	require.False(t, saved)
	require.Equal(t, "2", s.Draft().Phone, "unsaved work survives the failure")
	require.Equal(t, "1", s.Baseline().Phone)
	require.True(t, s.IsDirty())
	require.False(t, s.Saving())
}

func TestSession_SaveCleanIsNoop(t *testing.T) {
	s := editor.NewSession[models.Contact]()
	s.Load(models.Contact{Phone: "1"})

	calls := 0
	saved, err := s.Save(context.Background(), func(context.Context, models.Contact) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.False(t, saved)
	require.Zero(t, calls)
}

func TestSession_ConcurrentSaveIsSerialized(t *testing.T) {
	s := editor.NewSession[models.Contact]()
	s.Load(models.Contact{Phone: "1"})
	require.NoError(t, s.Mutate(func(c *models.Contact) { c.Phone = "2" }))

	inFlight := make(chan struct{})
	release := make(chan struct{})
	calls := 0

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		saved, err := s.Save(context.Background(), func(context.Context, models.Contact) error {
			calls++
			close(inFlight)
			<-release
			return nil
		})
		require.NoError(t, err)
		require.True(t, saved)
	}()

	<-inFlight
	// Second save while one is in flight is a no-op.
	saved, err := s.Save(context.Background(), func(context.Context, models.Contact) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.False(t, saved)

	close(release)
	wg.Wait()
	require.Equal(t, 1, calls)
	require.False(t, s.IsDirty())
}

func TestSession_SaveBeforeLoad(t *testing.T) {
	s := editor.NewSession[models.Contact]()
	_, err := s.Save(context.Background(), func(context.Context, models.Contact) error { return nil })
	require.ErrorIs(t, err, editor.ErrNotLoaded)
	require.ErrorIs(t, s.Mutate(func(*models.Contact) {}), editor.ErrNotLoaded)
}

// Dashboard contact flow end to end: load, edit, save, no reload.
func TestSession_ContactEditFlow(t *testing.T) {
	s := editor.NewSession[models.Contact]()
	s.Load(models.Contact{Phone: "1"})

	require.NoError(t, s.Mutate(func(c *models.Contact) { c.Phone = "2" }))
	require.True(t, s.IsDirty())

	saved, err := s.Save(context.Background(), func(context.Context, models.Contact) error { return nil })
	require.NoError(t, err)
	require.True(t, saved)
	require.False(t, s.IsDirty())
	require.Equal(t, "2", s.Baseline().Phone)
}
