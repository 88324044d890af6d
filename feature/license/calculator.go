package license

import (
	"math"
	"sort"

	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/collection"
)

// Filter narrows the items considered.
type Filter struct {
	// HiddenCatalogs excludes items of these catalogs. The main catalog
	// stands for the items that are in no event catalog.
	HiddenCatalogs []models.CatalogType `json:"hidden_catalogs,omitempty"`
	// HideUncollected excludes items whose recipe was not collected.
	HideUncollected bool `json:"hide_uncollected"`
	// HidePremium excludes items with any premium pack source.
	HidePremium bool `json:"hide_premium"`
}

// Entry is an item left to license.
type Entry struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}

// Material is the total amount of one item needed across every entry.
type Material struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Result lists the items left to license and the materials they need, both
// ordered by id.
type Result struct {
	Items     []Entry    `json:"items"`
	Materials []Material `json:"materials"`
}

// Compute aggregates the materials needed to license every item matching f.
// Items without a collection entry count as not started.
func Compute(db *models.Database, col map[int]collection.CollectedItem, f Filter) Result {
	hidden := hiddenItems(db, f.HiddenCatalogs)

	res := Result{Items: []Entry{}, Materials: []Material{}}
	needs := make(map[int]float64)

	for _, it := range db.SortedItems() {
		if !it.Licensable() {
			continue
		}
		state, ok := col[it.ID]
		if !ok {
			state = collection.Default(it.ID)
		}
		if state.Licensed || state.LicenseProgress >= *it.LicenseAmount {
			continue
		}
		if f.HideUncollected && !state.HaveRecipe {
			continue
		}
		if f.HidePremium && hasPremiumSource(it) {
			continue
		}
		if hidden[it.ID] {
			continue
		}

		remaining := *it.LicenseAmount - state.LicenseProgress
		res.Items = append(res.Items, Entry{ID: it.ID, Name: it.Name, Remaining: remaining})

		if it.Recipe == nil {
			needs[it.ID] += float64(remaining)
			continue
		}
		crafts := math.Ceil(float64(remaining) / float64(max(it.Recipe.CraftAmount, 1)))
		for _, ing := range it.Recipe.Ingredient {
			needs[ing.ID] += crafts * ing.Quantity
		}
	}

	for id, amount := range needs {
		res.Materials = append(res.Materials, Material{ID: id, Name: db.Items[id].Name, Amount: amount})
	}
	sort.Slice(res.Materials, func(i, j int) bool { return res.Materials[i].ID < res.Materials[j].ID })
	return res
}

func hasPremiumSource(it models.Item) bool {
	for _, s := range it.Source {
		if s.Type() == models.TypePremiumPack {
			return true
		}
	}
	return false
}

// hiddenItems returns the ids excluded by the hidden catalogs.
func hiddenItems(db *models.Database, catalogs []models.CatalogType) map[int]bool {
	hidden := make(map[int]bool)
	for _, key := range catalogs {
		if key == models.CatalogMain {
			for id := range nonEventItems(db) {
				hidden[id] = true
			}
			continue
		}
		for id := range db.Catalogs[key].ItemSet {
			hidden[id] = true
		}
	}
	return hidden
}

// nonEventItems returns the items that belong to no event catalog.
func nonEventItems(db *models.Database) models.ItemSet {
	out := make(models.ItemSet, len(db.Items))
	for id := range db.Items {
		out.Add(id)
	}
	for key, c := range db.Catalogs {
		if key == models.CatalogMain || key == models.CatalogQuest {
			continue
		}
		for id := range c.ItemSet {
			delete(out, id)
		}
	}
	return out
}
