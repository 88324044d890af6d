package models

import (
	"encoding/json"
	"sort"
)

// DropDetail records that an item can be obtained from a source.
type DropDetail struct {
	ItemID   int      `json:"item_id"`
	Fragment bool     `json:"fragment"`
	Kind     DropKind `json:"kind"`
}

// SourceDetails aggregates every drop of one source.
type SourceDetails struct {
	Source   Source
	Drops    []DropDetail
	ImageSrc *ImageRef
}

type sourceDetailsJSON struct {
	Key         SourceKey    `json:"key"`
	DisplayName string       `json:"display_name"`
	Source      SourceFields `json:"source"`
	Drops       []DropDetail `json:"drops"`
	ImageSrc    *ImageRef    `json:"image_src,omitempty"`
}

func (d SourceDetails) MarshalJSON() ([]byte, error) {
	return json.Marshal(sourceDetailsJSON{
		Key:         SourceKeyOf(d.Source),
		DisplayName: DisplayName(d.Source),
		Source:      d.Source.Fields(),
		Drops:       d.Drops,
		ImageSrc:    d.ImageSrc,
	})
}

// SourceImage is an entry of a source-image file. It is matched to sources
// by key only, so its fields are not validated.
type SourceImage struct {
	Type    SourceType `json:"type"`
	Subtype string     `json:"subtype,omitempty"`
	Name    string     `json:"name,omitempty"`
	Src     *ImageRef  `json:"src,omitempty"`
}

// Key derives the source key the image belongs to.
func (i SourceImage) Key() SourceKey {
	return MakeSourceKey(i.Type, i.Subtype, i.Name)
}

// SourceImageFile is the on-disk shape of a source-image file.
type SourceImageFile struct {
	Images []SourceImage `json:"images"`
}

// ImportedSources maps item names to the sources read from a sheet. Names
// keeps the order in which items were first seen.
type ImportedSources struct {
	Names   []string
	Sources map[string]SourceList
	// UnsafeSkipped counts rows skipped because their provenance is unknown.
	UnsafeSkipped int
}

// Add appends a source for name.
func (s *ImportedSources) Add(name string, src Source) {
	if s.Sources == nil {
		s.Sources = make(map[string]SourceList)
	}
	if _, ok := s.Sources[name]; !ok {
		s.Names = append(s.Names, name)
	}
	s.Sources[name] = append(s.Sources[name], src)
}

// Database is the merged catalog. It is replaced as a whole, never edited.
type Database struct {
	Items            map[int]Item
	Catalogs         map[CatalogType]CatalogDef
	Sources          map[SourceKey]SourceDetails
	MaxIDOnFirstLoad int
}

// ItemIDs returns every item id in ascending order.
func (db *Database) ItemIDs() []int {
	ids := make([]int, 0, len(db.Items))
	for id := range db.Items {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// SortedItems returns every item ordered by id.
func (db *Database) SortedItems() []Item {
	ids := db.ItemIDs()
	out := make([]Item, len(ids))
	for i, id := range ids {
		out[i] = db.Items[id]
	}
	return out
}

// SourceKeys returns every source key in ascending order.
func (db *Database) SourceKeys() []SourceKey {
	keys := make([]SourceKey, 0, len(db.Sources))
	for k := range db.Sources {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// CatalogList returns the catalogs in CatalogTypes order, followed by any
// unknown keys sorted.
func (db *Database) CatalogList() []CatalogDef {
	out := make([]CatalogDef, 0, len(db.Catalogs))
	seen := make(map[CatalogType]bool, len(db.Catalogs))
	for _, t := range CatalogTypes {
		if c, ok := db.Catalogs[t]; ok {
			out = append(out, c)
			seen[t] = true
		}
	}
	var rest []CatalogType
	for k := range db.Catalogs {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	for _, k := range rest {
		out = append(out, db.Catalogs[k])
	}
	return out
}

// WithItems returns a copy of db sharing everything but the item map.
func (db *Database) WithItems(items map[int]Item) *Database {
	cp := *db
	cp.Items = items
	return &cp
}

// CopyItems returns a shallow copy of the item map.
func (db *Database) CopyItems() map[int]Item {
	out := make(map[int]Item, len(db.Items))
	for id, it := range db.Items {
		out[id] = it
	}
	return out
}
