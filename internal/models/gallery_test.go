package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ozanatli/microsite-backend/internal/models"
)

func TestNormalizeGallery_LegacyStrings(t *testing.T) {
	raw := json.RawMessage(`["http://a/1.png"]`)

	list, err := models.NormalizeGallery(raw)
	require.NoError(t, err)
	require.Equal(t, models.GalleryList{
		{URL: "http://a/1.png", Category: "General"},
	}, list)
}

func TestNormalizeGallery_MixedAndIdempotent(t *testing.T) {
	raw := json.RawMessage(`["http://a/1.png", {"url":"http://a/2.png","category":"Food"}, {"url":"http://a/3.png"}]`)

	once, err := models.NormalizeGallery(raw)
	require.NoError(t, err)
	require.Len(t, once, 3)
	require.Equal(t, "General", once[0].Category)
	require.Equal(t, "Food", once[1].Category)
	require.Equal(t, "General", once[2].Category)

	// Round-trip the normalized form and normalize again.
	encoded, err := json.Marshal(once)
	require.NoError(t, err)
	twice, err := models.NormalizeGallery(encoded)
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestNormalizeGallery_Empty(t *testing.T) {
	list, err := models.NormalizeGallery(nil)
	require.NoError(t, err)
	require.Empty(t, list)

	list, err = models.NormalizeGallery(json.RawMessage(`[]`))
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestGalleryList_ScanNormalizes(t *testing.T) {
	var list models.GalleryList
	require.NoError(t, list.Scan([]byte(`["http://a/1.png",{"url":"http://b/2.png","category":"Team"}]`)))
	require.Equal(t, models.GalleryList{
		{URL: "http://a/1.png", Category: "General"},
		{URL: "http://b/2.png", Category: "Team"},
	}, list)
}

func TestGalleryList_ByCategory(t *testing.T) {
	list := models.GalleryList{
		{URL: "a", Category: "Food"},
		{URL: "b", Category: "General"},
		{URL: "c", Category: "Food"},
		{URL: "d"},
	}

	groups := list.ByCategory()
	require.Len(t, groups, 2)
	require.Equal(t, []models.GalleryItem{{URL: "a", Category: "Food"}, {URL: "c", Category: "Food"}}, groups["Food"])
	require.Len(t, groups["General"], 2)
}

func TestValidateSlug(t *testing.T) {
	require.NoError(t, models.ValidateSlug("acme"))
	require.NoError(t, models.ValidateSlug("acme-cafe-2"))

	for _, bad := range []string{"", "Acme", "acme cafe", "acme_cafe", "café"} {
		require.ErrorIs(t, models.ValidateSlug(bad), models.ErrInvalidSlug, "slug %q", bad)
	}
}
