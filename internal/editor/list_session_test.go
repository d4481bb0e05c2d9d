package editor_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ozanatli/microsite-backend/internal/editor"
	"github.com/ozanatli/microsite-backend/internal/models"
)

func loadedServices(t *testing.T, items ...models.Service) *editor.ListSession[models.Service] {
	t.Helper()
	ls := editor.NewListSession[models.Service]()
	ls.Load(items)
	return ls
}

func TestListSession_AddItemPrependsAndOpensEdit(t *testing.T) {
	existing := models.Service{ID: "s1", Name: "Haircut"}
	ls := loadedServices(t, existing)

	item := models.NewService()
	require.NoError(t, ls.AddItem(item))

	draft := ls.Draft()
	require.Len(t, draft, 2)
	require.Equal(t, item.ID, draft[0].ID, "new items are prepended")
	require.Equal(t, "s1", draft[1].ID)
	require.True(t, ls.IsDirty())
	require.Equal(t, item.ID, ls.EditingID())
}

func TestListSession_BeginEditRejectsSecondEdit(t *testing.T) {
	ls := loadedServices(t,
		models.Service{ID: "s1", Name: "Haircut"},
		models.Service{ID: "s2", Name: "Shave"},
	)

	require.NoError(t, ls.BeginEdit("s1"))
	// Deterministic policy: reject, never silently switch context.
	require.ErrorIs(t, ls.BeginEdit("s2"), editor.ErrEditInProgress)
	require.Equal(t, "s1", ls.EditingID())

	require.NoError(t, ls.CancelEdit())
	require.NoError(t, ls.BeginEdit("s2"))
}

func TestListSession_CommitEditUpdatesDraftOnly(t *testing.T) {
	ls := loadedServices(t, models.Service{ID: "s1", Name: "Haircut", Price: "10"})

	require.NoError(t, ls.BeginEdit("s1"))
	require.NoError(t, ls.UpdateTemp(func(s *models.Service) { s.Price = "12" }))

	// Temp edits are invisible until commit.
	require.Equal(t, "10", ls.Draft()[0].Price)
	require.False(t, ls.IsDirty())

	require.NoError(t, ls.CommitEdit())
	require.Equal(t, "12", ls.Draft()[0].Price)
	require.True(t, ls.IsDirty(), "commit stages the change; it does not save")
	require.Empty(t, ls.EditingID())
}

func TestListSession_CancelEditRevertsToPreEditValue(t *testing.T) {
	ls := loadedServices(t, models.Service{ID: "s1", Name: "Haircut"})

	require.NoError(t, ls.BeginEdit("s1"))
	require.NoError(t, ls.UpdateTemp(func(s *models.Service) { s.Name = "Beard trim" }))
	require.NoError(t, ls.CancelEdit())

	require.Equal(t, "Haircut", ls.Draft()[0].Name)
	require.False(t, ls.IsDirty())

	require.ErrorIs(t, ls.CancelEdit(), editor.ErrNoEditInProgress)
}

func TestListSession_DeleteIsTwoStep(t *testing.T) {
	ls := loadedServices(t,
		models.Service{ID: "s1"},
		models.Service{ID: "s2"},
	)

	// Confirm without a request fails.
	require.ErrorIs(t, ls.ConfirmDelete("s1"), editor.ErrNoDeleteRequest)

	require.NoError(t, ls.RequestDelete("s1"))
	// Confirming a different id fails too.
	require.ErrorIs(t, ls.ConfirmDelete("s2"), editor.ErrNoDeleteRequest)

	require.NoError(t, ls.RequestDelete("s1"))
	require.NoError(t, ls.ConfirmDelete("s1"))

	draft := ls.Draft()
	require.Len(t, draft, 1)
	require.Equal(t, "s2", draft[0].ID)
	require.True(t, ls.IsDirty())

	require.ErrorIs(t, ls.RequestDelete("missing"), editor.ErrItemNotFound)
}

func TestListSession_DeleteOpenItemClosesEdit(t *testing.T) {
	ls := loadedServices(t, models.Service{ID: "s1"})

	require.NoError(t, ls.BeginEdit("s1"))
	require.NoError(t, ls.RequestDelete("s1"))
	require.NoError(t, ls.ConfirmDelete("s1"))
	require.Empty(t, ls.EditingID())
	require.Empty(t, ls.Draft())
}

func TestListSession_SavePersistsWholeList(t *testing.T) {
	ls := loadedServices(t, models.Service{ID: "s1", Name: "Haircut"})

	require.NoError(t, ls.BeginEdit("s1"))
	require.NoError(t, ls.UpdateTemp(func(s *models.Service) { s.Name = "Cut & style" }))
	require.NoError(t, ls.CommitEdit())

	var written []models.Service
	saved, err := ls.Save(context.Background(), func(_ context.Context, items []models.Service) error {
		written = items
		return nil
	})
	require.NoError(t, err)
	require.True(t, saved)
	require.Equal(t, "Cut & style", written[0].Name)
	require.False(t, ls.IsDirty())
}

func TestListSession_AppendBatch(t *testing.T) {
	ls := editor.NewListSession[models.GalleryItem]()
	ls.Load([]models.GalleryItem{{URL: "http://a/1.png", Category: "General"}})

	batch := []models.GalleryItem{
		{URL: "http://a/2.png", Category: "Food"},
		{URL: "http://a/3.png", Category: "Food"},
	}
	require.NoError(t, ls.AppendBatch(batch))

	draft := ls.Draft()
	require.Len(t, draft, 3)
	require.Equal(t, "http://a/1.png", draft[0].URL)
	require.Equal(t, "http://a/3.png", draft[2].URL)
	require.True(t, ls.IsDirty())
}

func TestRegistry_PutGetDelete(t *testing.T) {
	r := editor.NewRegistry(time.Minute)
	userID := uuid.New()

	sess := editor.NewSession[models.Contact]()
	r.Put(userID, "contact", sess)

	got, ok := r.Get(userID, "contact")
	require.True(t, ok)
	require.Same(t, sess, got.(*editor.Session[models.Contact]))

	_, ok = r.Get(userID, "seo")
	require.False(t, ok)
	_, ok = r.Get(uuid.New(), "contact")
	require.False(t, ok)

	r.Delete(userID, "contact")
	require.Zero(t, r.Len())
}
