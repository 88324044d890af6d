package reconcile

import (
	"strconv"

	"catalog-manager/core/dataerr"
	"catalog-manager/core/logger"
	"catalog-manager/core/utils"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/overrides"

	"go.uber.org/zap"
)

const suggestionCount = 3

// ReconcileCatalog resolves the entries of def against items. Name-only
// entries get their id filled in. Entries that cannot be resolved, or whose
// name disagrees with their id, are kept in Items but left out of ItemSet.
func ReconcileCatalog(def models.CatalogDef, items map[int]models.Item, index *NameIndex, log *zap.Logger) models.CatalogDef {
	log = logger.OrNop(log).With(zap.String("catalog", string(def.Key)))

	out := def
	out.Items = make([]models.CatalogEntry, len(def.Items))
	out.ItemSet = make(models.ItemSet, len(def.Items))

	for i, e := range def.Items {
		out.Items[i] = e

		if e.ID == "" {
			if e.Name == "" {
				log.Warn("Catalog entry has neither id nor name", zap.Int("position", i))
				continue
			}
			id, ok := index.Lookup(e.Name)
			if !ok {
				log.Warn("Could not resolve catalog entry",
					zap.String("name", e.Name),
					zap.Strings("suggestions", index.Suggest(e.Name, suggestionCount)))
				continue
			}
			out.Items[i].ID = utils.FormatID(id)
			out.ItemSet.Add(id)
			continue
		}

		id, err := strconv.Atoi(e.ID)
		if err != nil {
			log.Warn("Catalog entry has a malformed id", zap.String("id", e.ID), zap.String("name", e.Name))
			continue
		}
		it, ok := items[id]
		if !ok {
			log.Warn("Catalog entry references a missing item", zap.Int("id", id), zap.String("name", e.Name))
			continue
		}
		if e.Name != "" && it.Name != e.Name {
			log.Warn("Catalog entry name does not match item",
				zap.Int("id", id),
				zap.String("name", e.Name),
				zap.String("item_name", it.Name))
			continue
		}
		out.ItemSet.Add(id)
	}
	return out
}

// ReconcileCatalogs reconciles every catalog against items with a freshly
// built name index. A catalog key defined twice is a DuplicateCatalogKey error.
func ReconcileCatalogs(items map[int]models.Item, catalogs []models.CatalogDef, ov *overrides.Overrides, log *zap.Logger) (map[models.CatalogType]models.CatalogDef, error) {
	index, err := NewNameIndex(items, ov)
	if err != nil {
		return nil, err
	}

	out := make(map[models.CatalogType]models.CatalogDef, len(catalogs))
	for _, c := range catalogs {
		if _, dup := out[c.Key]; dup {
			return nil, dataerr.DuplicateCatalog(string(c.Key))
		}
		out[c.Key] = ReconcileCatalog(c, items, index, log)
	}
	return out, nil
}
