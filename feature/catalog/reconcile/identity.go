package reconcile

import (
	"sort"
	"strings"

	"catalog-manager/core/dataerr"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/overrides"

	"github.com/agnivade/levenshtein"
)

// NameIndex resolves item names to ids and hands out new ids.
type NameIndex struct {
	ids       map[string]int
	duplicate overrides.Set
	// allocated lists the names given a new id, in allocation order.
	allocated []string
	// MaxID is the highest id known or allocated.
	MaxID int
}

// BuildNameIndex indexes items by name. Seeds are installed first. Items
// whose name is a known duplicate are left out; any other repeated name is a
// DuplicateItemName error.
func BuildNameIndex(items map[int]models.Item, knownDuplicates overrides.Set, seed map[string]int, minID int) (*NameIndex, error) {
	idx := &NameIndex{
		ids:       make(map[string]int, len(items)+len(seed)),
		duplicate: knownDuplicates,
		MaxID:     minID,
	}
	for name, id := range seed {
		idx.ids[name] = id
		idx.bump(id)
	}

	ids := make([]int, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		name := items[id].Name
		if knownDuplicates.Has(name) {
			continue
		}
		if prev, ok := idx.ids[name]; ok && prev != id {
			return nil, dataerr.DuplicateName(name, id)
		}
		idx.ids[name] = id
		idx.bump(id)
	}
	return idx, nil
}

// NewNameIndex builds the index used by the merger, seeded from ov.
func NewNameIndex(items map[int]models.Item, ov *overrides.Overrides) (*NameIndex, error) {
	return BuildNameIndex(items, ov.KnownDuplicateNames, ov.PlantIngredientIDs, ov.MinItemID)
}

func (idx *NameIndex) bump(id int) {
	if id > idx.MaxID {
		idx.MaxID = id
	}
}

// Lookup returns the id of name.
func (idx *NameIndex) Lookup(name string) (int, bool) {
	id, ok := idx.ids[name]
	return id, ok
}

// IsKnownDuplicate reports whether name is shared by several items.
func (idx *NameIndex) IsKnownDuplicate(name string) bool {
	return idx.duplicate.Has(name)
}

// Allocate returns the id of name, assigning the next free id if it is new.
func (idx *NameIndex) Allocate(name string) int {
	if id, ok := idx.ids[name]; ok {
		return id
	}
	idx.MaxID++
	idx.ids[name] = idx.MaxID
	idx.allocated = append(idx.allocated, name)
	return idx.MaxID
}

// Allocated returns the names that received a new id, in order.
func (idx *NameIndex) Allocated() []string {
	return idx.allocated
}

// Names returns every resolvable name.
func (idx *NameIndex) Names() []string {
	names := make([]string, 0, len(idx.ids))
	for n := range idx.ids {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Suggest returns up to n known names close to name, nearest first.
func (idx *NameIndex) Suggest(name string, n int) []string {
	type candidate struct {
		name string
		dist int
	}
	target := strings.ToLower(name)
	limit := suggestLimit(len(target))

	var cands []candidate
	for known := range idx.ids {
		d := levenshtein.ComputeDistance(target, strings.ToLower(known))
		if d <= limit {
			cands = append(cands, candidate{known, d})
		}
	}
	for known := range idx.duplicate {
		if _, ok := idx.ids[known]; ok {
			continue
		}
		d := levenshtein.ComputeDistance(target, strings.ToLower(known))
		if d <= limit {
			cands = append(cands, candidate{known, d})
		}
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].name < cands[j].name
		}
		return cands[i].dist < cands[j].dist
	})

	out := make([]string, 0, n)
	for _, c := range cands {
		if len(out) == n {
			break
		}
		out = append(out, c.name)
	}
	return out
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
