package models

import (
	"encoding/json"
	"fmt"
	"sort"

	"catalog-manager/core/dataerr"
)

// CatalogType is the key of a catalog.
type CatalogType string

const (
	CatalogMain              CatalogType = "main"
	CatalogQuest             CatalogType = "quest"
	CatalogSunFestival       CatalogType = "sun-festival"
	CatalogFloodedExpedition CatalogType = "flooded-expedition"
	CatalogPhantomIsle       CatalogType = "phantom-isle"
	CatalogEvercoldIsle      CatalogType = "evercold-isle"
)

// CatalogTypes lists every catalog in display order.
var CatalogTypes = []CatalogType{
	CatalogMain, CatalogQuest, CatalogSunFestival,
	CatalogFloodedExpedition, CatalogPhantomIsle, CatalogEvercoldIsle,
}

// ParseCatalogType validates a catalog key.
func ParseCatalogType(s string) (CatalogType, error) {
	return member("catalog", s, CatalogTypes)
}

// IsEvent reports whether the catalog belongs to an event.
func (c CatalogType) IsEvent() bool {
	return c != CatalogMain && c != CatalogQuest
}

// FileName is the export file name of the catalog.
func (c CatalogType) FileName() string {
	switch c {
	case CatalogEvercoldIsle:
		return "evercold-catalog.json"
	case CatalogFloodedExpedition:
		return "flooded-expedition-catalog.json"
	case CatalogMain:
		return "main-catalog.json"
	case CatalogPhantomIsle:
		return "phantom-catalog.json"
	case CatalogQuest:
		return "quest-catalog.json"
	case CatalogSunFestival:
		return "sun-festival-catalog.json"
	}
	return string(c) + "-catalog.json"
}

// CatalogEntry references an item by id, name or both. It is serialized as
// [id] or [id, name].
type CatalogEntry struct {
	ID   string
	Name string
}

func (e CatalogEntry) MarshalJSON() ([]byte, error) {
	if e.Name == "" {
		return json.Marshal([]string{e.ID})
	}
	return json.Marshal([]string{e.ID, e.Name})
}

func (e *CatalogEntry) UnmarshalJSON(data []byte) error {
	// Older catalog files list bare ids.
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*e = CatalogEntry{ID: id}
		return nil
	}

	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("catalog entry: %w", err)
	}
	switch len(parts) {
	case 1:
		*e = CatalogEntry{ID: parts[0]}
	case 2:
		*e = CatalogEntry{ID: parts[0], Name: parts[1]}
	default:
		return dataerr.Malformed(0, "catalog entry", string(data))
	}
	return nil
}

// ItemSet is a set of item ids.
type ItemSet map[int]struct{}

// Add inserts id.
func (s ItemSet) Add(id int) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set. A nil set is empty.
func (s ItemSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the ids in ascending order.
func (s ItemSet) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// CatalogDef is one in-game catalog. ItemSet is derived from Items and is
// never serialized.
type CatalogDef struct {
	Key        CatalogType    `json:"key"`
	Name       string         `json:"name"`
	Icon       ImageRef       `json:"icon"`
	Categories []Category     `json:"categories,omitempty"`
	Items      []CatalogEntry `json:"items"`
	ItemSet    ItemSet        `json:"-"`
}

// CatalogFile is the on-disk shape of a catalog file.
type CatalogFile struct {
	Catalogs []CatalogDef `json:"catalogs"`
}
