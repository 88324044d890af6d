package reconcile

import (
	"catalog-manager/core/dataerr"
	"catalog-manager/core/logger"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/overrides"

	"go.uber.org/zap"
)

// BuildInput holds the decoded data files.
type BuildInput struct {
	ItemFiles        []models.ItemFile
	CatalogFiles     []models.CatalogFile
	SourceImageFiles []models.SourceImageFile
}

// Build merges the data files into a Database. Item ids must be unique across
// all files and catalog keys unique across all catalog files.
func Build(in BuildInput, ov *overrides.Overrides, log *zap.Logger) (*models.Database, error) {
	log = logger.OrNop(log)
	images := SourceImageMap(in.SourceImageFiles)

	db := &models.Database{
		Items:    make(map[int]models.Item),
		Catalogs: make(map[models.CatalogType]models.CatalogDef),
	}

	for _, f := range in.ItemFiles {
		for _, it := range f.Items {
			if prev, dup := db.Items[it.ID]; dup {
				return nil, dataerr.DuplicateID(it.ID, prev.Name)
			}
			db.Items[it.ID] = it
			if it.ID > db.MaxIDOnFirstLoad {
				db.MaxIDOnFirstLoad = it.ID
			}
		}
	}

	// Drops follow item id order, as in RebuildSources.
	index := newSourceIndex(func(k models.SourceKey) *models.ImageRef { return images[k] })
	for _, it := range db.SortedItems() {
		index.addItem(it)
	}
	db.Sources = index.entries

	var catalogs []models.CatalogDef
	for _, f := range in.CatalogFiles {
		catalogs = append(catalogs, f.Catalogs...)
	}
	reconciled, err := ReconcileCatalogs(db.Items, catalogs, ov, log)
	if err != nil {
		return nil, err
	}
	db.Catalogs = reconciled

	log.Info("Built catalog database",
		zap.Int("items", len(db.Items)),
		zap.Int("sources", len(db.Sources)),
		zap.Int("catalogs", len(db.Catalogs)),
		zap.Int("max_id", db.MaxIDOnFirstLoad))
	return db, nil
}
