package reconcile

import (
	"fmt"

	"catalog-manager/core/logger"
	"catalog-manager/feature/catalog/models"

	"go.uber.org/zap"
)

// ExportItems dumps every item, ordered by id.
func ExportItems(db *models.Database) models.ItemFile {
	return models.ItemFile{Items: db.SortedItems()}
}

// ExportNewItems dumps the items created after the database was first loaded.
func ExportNewItems(db *models.Database) models.ItemFile {
	items := []models.Item{}
	for _, it := range db.SortedItems() {
		if it.ID > db.MaxIDOnFirstLoad {
			items = append(items, it)
		}
	}
	return models.ItemFile{Items: items}
}

// ExportItemSubset dumps the current version of the items listed in original,
// in its order. Items missing from db are left out with a warning.
func ExportItemSubset(db *models.Database, original models.ItemFile, log *zap.Logger) models.ItemFile {
	log = logger.OrNop(log)
	items := []models.Item{}
	for _, it := range original.Items {
		cur, ok := db.Items[it.ID]
		if !ok {
			log.Warn("Item missing from the database, not exported", zap.Int("id", it.ID), zap.String("name", it.Name))
			continue
		}
		items = append(items, cur)
	}
	return models.ItemFile{Items: items}
}

// ExportCatalog dumps a single catalog.
func ExportCatalog(db *models.Database, key models.CatalogType) (models.CatalogFile, error) {
	c, ok := db.Catalogs[key]
	if !ok {
		return models.CatalogFile{}, fmt.Errorf("catalog %s not found", key)
	}
	c.ItemSet = nil
	return models.CatalogFile{Catalogs: []models.CatalogDef{c}}, nil
}
