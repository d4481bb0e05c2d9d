package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozanatli/microsite-backend/internal/editor"
	"github.com/ozanatli/microsite-backend/internal/models"
	"github.com/ozanatli/microsite-backend/internal/services"
	"github.com/ozanatli/microsite-backend/internal/store"
)

type patchRecorder struct {
	patches []store.TenantPatch
	fail    error
}

func (r *patchRecorder) persist(_ context.Context, p store.TenantPatch) error {
	if r.fail != nil {
		return r.fail
	}
	r.patches = append(r.patches, p)
	return nil
}

func TestBindScalarDraftAndSave(t *testing.T) {
	rec := &patchRecorder{}
	ops := bindScalar(store.SectionContact, models.Contact{Phone: "111"},
		func(v models.Contact) store.TenantPatch { return store.ContactPatch{Contact: v} }, rec.persist)

	st := ops.state()
	assert.Equal(t, store.SectionContact, st.Section)
	assert.False(t, st.Dirty)

	require.NoError(t, ops.setDraft([]byte(`{"phone":"222","email":"a@b.com"}`)))
	assert.True(t, ops.dirty())

	saved, err := ops.save(context.Background())
	require.NoError(t, err)
	assert.True(t, saved)
	assert.False(t, ops.dirty())

	require.Len(t, rec.patches, 1)
	cp, ok := rec.patches[0].(store.ContactPatch)
	require.True(t, ok)
	assert.Equal(t, "222", cp.Contact.Phone)
	assert.Equal(t, "a@b.com", cp.Contact.Email)
}

func TestBindScalarInvalidPayload(t *testing.T) {
	rec := &patchRecorder{}
	ops := bindScalar(store.SectionSEO, models.SEO{},
		func(v models.SEO) store.TenantPatch { return store.SEOPatch{SEO: v} }, rec.persist)

	err := ops.setDraft([]byte(`{not json`))
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.False(t, ops.dirty())
}

func TestBindScalarFailedSaveKeepsDraft(t *testing.T) {
	rec := &patchRecorder{fail: errors.New("db down")}
	ops := bindScalar(store.SectionOffers, models.Offers{},
		func(v models.Offers) store.TenantPatch { return store.OffersPatch{Offers: v} }, rec.persist)

	require.NoError(t, ops.setDraft([]byte(`{"enabled":true,"text":"sale"}`)))

	saved, err := ops.save(context.Background())
	assert.Error(t, err)
	assert.False(t, saved)
	assert.True(t, ops.dirty())

	rec.fail = nil
	saved, err = ops.save(context.Background())
	require.NoError(t, err)
	assert.True(t, saved)
}

func TestBindListServiceFlow(t *testing.T) {
	rec := &patchRecorder{}
	existing := []models.Service{{ID: "s1", Name: "Cut"}}
	ops, _ := bindList(store.SectionServices, existing, newServiceItem,
		func(items []models.Service) store.TenantPatch {
			return store.ServicesPatch{Services: models.ServiceList(items)}
		}, rec.persist)

	require.NoError(t, ops.list.add([]byte(`{"name":"Color","id":"forced"}`)))

	st := ops.state()
	assert.True(t, st.Dirty)
	assert.NotEmpty(t, st.EditingID)
	// The id comes from the server even when the body carries one.
	assert.NotEqual(t, "forced", st.EditingID)

	require.NoError(t, ops.list.updateTemp([]byte(`{"price":"30"}`)))
	require.NoError(t, ops.list.commitEdit())
	assert.Empty(t, ops.state().EditingID)

	saved, err := ops.save(context.Background())
	require.NoError(t, err)
	assert.True(t, saved)

	require.Len(t, rec.patches, 1)
	sp, ok := rec.patches[0].(store.ServicesPatch)
	require.True(t, ok)
	require.Len(t, sp.Services, 2)
	assert.Equal(t, "Color", sp.Services[0].Name)
	assert.Equal(t, "30", sp.Services[0].Price)
	assert.Equal(t, "s1", sp.Services[1].ID)
}

func TestBindListRejectsSecondEdit(t *testing.T) {
	rec := &patchRecorder{}
	ops, _ := bindList(store.SectionServices,
		[]models.Service{{ID: "s1", Name: "Cut"}, {ID: "s2", Name: "Color"}},
		newServiceItem,
		func(items []models.Service) store.TenantPatch {
			return store.ServicesPatch{Services: models.ServiceList(items)}
		}, rec.persist)

	require.NoError(t, ops.list.beginEdit("s1"))
	assert.ErrorIs(t, ops.list.beginEdit("s2"), editor.ErrEditInProgress)
	require.NoError(t, ops.list.cancelEdit())
	require.NoError(t, ops.list.beginEdit("s2"))
}

func TestBindGalleryAppendAndSave(t *testing.T) {
	rec := &patchRecorder{}
	ops := bindGallery(store.SectionGallery,
		models.GalleryList{{URL: "https://img/1.jpg", Category: "General"}}, rec.persist)
	require.NotNil(t, ops.appendGallery)

	require.NoError(t, ops.appendGallery([]models.GalleryItem{
		{URL: "https://img/2.jpg", Category: "Interior"},
		{URL: "https://img/3.jpg", Category: "Interior"},
	}))
	assert.True(t, ops.dirty())

	saved, err := ops.save(context.Background())
	require.NoError(t, err)
	assert.True(t, saved)

	require.Len(t, rec.patches, 1)
	gp, ok := rec.patches[0].(store.GalleryPatch)
	require.True(t, ok)
	require.Len(t, gp.Gallery, 3)
	assert.Equal(t, "https://img/1.jpg", gp.Gallery[0].URL)
	assert.Equal(t, "https://img/3.jpg", gp.Gallery[2].URL)
}

func TestNewGalleryItemRequiresURL(t *testing.T) {
	_, err := newGalleryItem([]byte(`{"category":"Interior"}`))
	assert.ErrorIs(t, err, services.ErrValidation)

	item, err := newGalleryItem([]byte(`{"url":"https://img/4.jpg"}`))
	require.NoError(t, err)
	assert.Equal(t, models.DefaultGalleryCategory, item.Category)
}
