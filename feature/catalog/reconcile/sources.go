package reconcile

import (
	"sort"

	"catalog-manager/feature/catalog/models"
)

// sourceIndex accumulates drops per source key, remembering insertion order.
type sourceIndex struct {
	entries map[models.SourceKey]models.SourceDetails
	imageOf func(models.SourceKey) *models.ImageRef
}

func newSourceIndex(imageOf func(models.SourceKey) *models.ImageRef) *sourceIndex {
	return &sourceIndex{
		entries: make(map[models.SourceKey]models.SourceDetails),
		imageOf: imageOf,
	}
}

func (x *sourceIndex) addItem(it models.Item) {
	for _, s := range it.Source {
		key := models.SourceKeyOf(s)
		d, ok := x.entries[key]
		if !ok {
			d = models.SourceDetails{Source: s, ImageSrc: x.imageOf(key)}
		}
		base := s.Drop()
		d.Drops = append(d.Drops, models.DropDetail{ItemID: it.ID, Fragment: base.Fragment, Kind: base.Kind})
		x.entries[key] = d
	}
}

// RebuildSources derives the source index from items, walking them by
// ascending id. Images are carried over from previous, which may be nil.
func RebuildSources(items map[int]models.Item, previous map[models.SourceKey]models.SourceDetails) map[models.SourceKey]models.SourceDetails {
	x := newSourceIndex(func(k models.SourceKey) *models.ImageRef {
		if d, ok := previous[k]; ok {
			return d.ImageSrc
		}
		return nil
	})

	ids := make([]int, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		x.addItem(items[id])
	}
	return x.entries
}

// SourceImageMap collects source images by key. Later entries win.
func SourceImageMap(files []models.SourceImageFile) map[models.SourceKey]*models.ImageRef {
	out := make(map[models.SourceKey]*models.ImageRef)
	for _, f := range files {
		for _, img := range f.Images {
			out[img.Key()] = img.Src
		}
	}
	return out
}

// ListSources returns the sources of db sorted by key, optionally limited to
// one type.
func ListSources(db *models.Database, only models.SourceType) []models.SourceDetails {
	var out []models.SourceDetails
	for _, k := range db.SourceKeys() {
		d := db.Sources[k]
		if only != "" && d.Source.Type() != only {
			continue
		}
		out = append(out, d)
	}
	return out
}
