package reconcile

import (
	"sort"

	"catalog-manager/core/dataerr"
	"catalog-manager/core/logger"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/overrides"

	"go.uber.org/zap"
)

// MergeItem lays next over prev. Fields set in next win, the rest are kept.
func MergeItem(prev, next models.Item) models.Item {
	out := prev
	out.ID = next.ID
	if next.Name != "" {
		out.Name = next.Name
	}
	if next.Category != "" {
		out.Category = next.Category
	}
	if next.Image != nil {
		out.Image = next.Image
	}
	if next.Recipe != nil {
		out.Recipe = next.Recipe
	}
	if next.LicenseAmount != nil {
		out.LicenseAmount = next.LicenseAmount
	}
	if len(next.Source) > 0 {
		out.Source = next.Source
	}
	return out
}

// Integrate assigns ids to placeholder items and merges them into a copy of
// db. Ingredients may name items that are not part of the batch; those get
// ids too and become bare Material items. The input database is not changed.
func Integrate(db *models.Database, placeholders []models.Item, ov *overrides.Overrides, log *zap.Logger) (*models.Database, error) {
	log = logger.OrNop(log)

	index, err := NewNameIndex(db.Items, ov)
	if err != nil {
		return nil, err
	}

	skip := func(it models.Item) bool {
		if ov.IsDenied(it.Name) {
			return true
		}
		if ov.IsKnownDuplicate(it.Name) {
			log.Info("Ignoring imported item with a duplicate name", zap.String("name", it.Name))
			return true
		}
		return false
	}

	// Pass 1: ids for every ingredient and item name, in encounter order.
	referencedSeeds := make(map[string]bool)
	for _, it := range placeholders {
		if skip(it) {
			continue
		}
		if it.Recipe != nil {
			for _, ing := range it.Recipe.Ingredient {
				if _, ok := index.Lookup(ing.Name); ok {
					if _, seeded := ov.PlantIngredientIDs[ing.Name]; seeded {
						referencedSeeds[ing.Name] = true
					}
					continue
				}
				if ov.IsKnownDuplicate(ing.Name) {
					return nil, dataerr.Unresolved(ing.Name, it.Name, nil)
				}
				index.Allocate(ing.Name)
			}
		}
		index.Allocate(it.Name)
	}

	// Pass 2: rebuild items with real ids and merge over existing ones.
	items := db.CopyItems()
	updated := 0
	for _, it := range placeholders {
		if ov.IsDenied(it.Name) || ov.IsKnownDuplicate(it.Name) {
			continue
		}
		id, _ := index.Lookup(it.Name)
		next := it
		next.ID = id
		if it.Recipe != nil {
			recipe := *it.Recipe
			recipe.Ingredient = make([]models.Ingredient, len(it.Recipe.Ingredient))
			for i, ing := range it.Recipe.Ingredient {
				ingID, ok := index.Lookup(ing.Name)
				if !ok {
					return nil, dataerr.Unresolved(ing.Name, it.Name, index.Suggest(ing.Name, suggestionCount))
				}
				recipe.Ingredient[i] = models.Ingredient{Name: ing.Name, ID: ingID, Quantity: ing.Quantity}
			}
			next.Recipe = &recipe
		}
		if prev, ok := items[id]; ok {
			next = MergeItem(prev, next)
			updated++
		}
		items[id] = next
	}

	// Pass 3: bare materials for names that only appear as ingredients.
	var synthesize []string
	for name := range referencedSeeds {
		synthesize = append(synthesize, name)
	}
	sort.Strings(synthesize)
	synthesize = append(synthesize, index.Allocated()...)
	created := 0
	for _, name := range synthesize {
		id, _ := index.Lookup(name)
		if _, ok := items[id]; ok {
			continue
		}
		items[id] = models.Item{ID: id, Name: name, Category: models.CategoryMaterial}
		created++
	}

	out := db.WithItems(items)
	out.Sources = RebuildSources(items, db.Sources)
	catalogs, err := ReconcileCatalogs(items, db.CatalogList(), ov, log)
	if err != nil {
		return nil, err
	}
	out.Catalogs = catalogs

	log.Info("Integrated imported items",
		zap.Int("imported", len(placeholders)),
		zap.Int("new_ids", len(index.Allocated())),
		zap.Int("merged", updated),
		zap.Int("materials_created", created))
	return out, nil
}

// IntegrateSources attaches imported sources to existing items by name. With
// keepOld, existing sources that are not re-imported are kept ahead of the
// imported ones; otherwise they are replaced.
func IntegrateSources(db *models.Database, imp models.ImportedSources, keepOld bool, ov *overrides.Overrides, log *zap.Logger) (*models.Database, error) {
	log = logger.OrNop(log)

	index, err := NewNameIndex(db.Items, ov)
	if err != nil {
		return nil, err
	}

	items := db.CopyItems()
	for _, name := range imp.Names {
		if ov.IsKnownDuplicate(name) {
			log.Info("Skipping sources for a name shared by several items", zap.String("name", name))
			continue
		}
		id, ok := index.Lookup(name)
		if !ok {
			return nil, dataerr.Missing(name, index.Suggest(name, suggestionCount))
		}
		it, ok := items[id]
		if !ok {
			return nil, dataerr.Missing(name, nil)
		}

		incoming := imp.Sources[name]
		var list models.SourceList
		if keepOld {
			for _, s := range it.Source {
				if !containsSource(incoming, s) {
					list = append(list, s)
				}
			}
		}
		list = append(list, incoming...)
		it.Source = list
		items[id] = it
	}

	out := db.WithItems(items)
	out.Sources = RebuildSources(items, db.Sources)
	log.Info("Integrated imported sources",
		zap.Int("items", len(imp.Names)),
		zap.Int("unsafe_skipped", imp.UnsafeSkipped),
		zap.Bool("keep_old", keepOld))
	return out, nil
}

func containsSource(list models.SourceList, s models.Source) bool {
	f := s.Fields()
	for _, o := range list {
		if o.Fields() == f {
			return true
		}
	}
	return false
}

// IntegrateIcons sets the wiki image of every item whose name has an icon.
func IntegrateIcons(db *models.Database, icons []models.NamedIcon, log *zap.Logger) *models.Database {
	log = logger.OrNop(log)

	byName := make(map[string]string, len(icons))
	var order []string
	for _, ic := range icons {
		if _, ok := byName[ic.Name]; !ok {
			order = append(order, ic.Name)
		}
		byName[ic.Name] = ic.Path
	}

	items := make(map[int]models.Item, len(db.Items))
	used := make(map[string]bool, len(byName))
	for id, it := range db.Items {
		if p, ok := byName[it.Name]; ok {
			it.Image = &models.ImageRef{FandomWikiImagePath: p}
			used[it.Name] = true
		}
		items[id] = it
	}

	for _, name := range order {
		if !used[name] {
			log.Warn("Could not find item for icon", zap.String("name", name))
		}
	}
	log.Info("Integrated item icons", zap.Int("icons", len(byName)), zap.Int("matched", len(used)))
	return db.WithItems(items)
}

// ReplaceCatalog swaps in def, reconciled against the items of db.
func ReplaceCatalog(db *models.Database, def models.CatalogDef, ov *overrides.Overrides, log *zap.Logger) (*models.Database, error) {
	index, err := NewNameIndex(db.Items, ov)
	if err != nil {
		return nil, err
	}
	catalogs := make(map[models.CatalogType]models.CatalogDef, len(db.Catalogs)+1)
	for k, c := range db.Catalogs {
		catalogs[k] = c
	}
	catalogs[def.Key] = ReconcileCatalog(def, db.Items, index, log)

	out := *db
	out.Catalogs = catalogs
	return &out, nil
}
