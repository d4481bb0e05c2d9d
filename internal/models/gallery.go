package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// DefaultGalleryCategory is assigned to legacy items stored as bare URLs.
const DefaultGalleryCategory = "General"

// GalleryItem is one gallery entry. Stored documents may contain a legacy
// representation (a bare URL string); decoding normalizes it so nothing past
// the storage boundary ever sees the union.
type GalleryItem struct {
	URL       string     `json:"url"`
	Category  string     `json:"category"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// ItemID satisfies the collection editor's item contract. Gallery items carry
// no synthetic id; the URL is the key.
func (g GalleryItem) ItemID() string { return g.URL }

// UnmarshalJSON accepts either a bare URL string or the structured form.
func (g *GalleryItem) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var url string
		if err := json.Unmarshal(data, &url); err != nil {
			return err
		}
		g.URL = url
		g.Category = DefaultGalleryCategory
		g.CreatedAt = nil
		return nil
	}

	type alias GalleryItem
	var item alias
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*g = GalleryItem(item)
	if g.Category == "" {
		g.Category = DefaultGalleryCategory
	}
	return nil
}

type GalleryList []GalleryItem

func (l GalleryList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *GalleryList) Scan(v interface{}) error    { return jsonScan(l, v) }

// ByCategory groups items for display. Pure derived view over the list;
// insertion order is preserved within each group.
func (l GalleryList) ByCategory() map[string][]GalleryItem {
	groups := make(map[string][]GalleryItem)
	for _, item := range l {
		cat := item.Category
		if cat == "" {
			cat = DefaultGalleryCategory
		}
		groups[cat] = append(groups[cat], item)
	}
	return groups
}

// NormalizeGallery decodes a raw stored gallery array, coercing legacy bare
// strings into structured items. Idempotent: normalizing an already
// structured array is a no-op.
func NormalizeGallery(raw json.RawMessage) (GalleryList, error) {
	if len(raw) == 0 {
		return GalleryList{}, nil
	}
	var list GalleryList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = GalleryList{}
	}
	return list, nil
}
