package reconcile

import (
	"testing"

	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/overrides"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testOverrides(t *testing.T) *overrides.Overrides {
	t.Helper()
	ov, err := overrides.Parse([]byte(`
version: 1
min_item_id: 99
known_duplicate_names: [Pumpkin, Kelp, Jam Waffles]
plant_ingredient_ids:
  Pumpkin: 238
  Kelp: 920
`))
	require.NoError(t, err)
	return ov
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return zap.New(core), logs
}

func harvest(seed string) models.Source {
	return models.HarvestSource{Base: models.Base{Kind: models.KindItem}, Seed: models.GardenSeed(seed)}
}

func dailyChest(fragment bool) models.Source {
	return models.TaskChestSource{Base: models.Base{Kind: models.KindItem, Fragment: fragment}, Scope: models.TaskDaily}
}

func sampleItems() map[int]models.Item {
	return map[int]models.Item{
		238: {ID: 238, Name: "Pumpkin", Category: models.CategoryPlant, Source: models.SourceList{harvest("Pumpkin")}},
		100: {ID: 100, Name: "Flour", Category: models.CategoryMaterial, Source: models.SourceList{dailyChest(false)}},
		101: {ID: 101, Name: "Pumpkin Pie", Category: models.CategoryConsumables,
			LicenseAmount: models.IntPtr(10),
			Recipe: &models.Recipe{CraftAmount: 2, Ingredient: []models.Ingredient{
				{Name: "Pumpkin", ID: 238, Quantity: 1},
				{Name: "Flour", ID: 100, Quantity: 2},
			}},
			Source: models.SourceList{dailyChest(true), harvest("Pumpkin")},
		},
	}
}

func sampleDatabase(t *testing.T) *models.Database {
	t.Helper()
	items := sampleItems()
	list := make([]models.Item, 0, len(items))
	for _, id := range []int{100, 101, 238} {
		list = append(list, items[id])
	}
	db, err := Build(BuildInput{
		ItemFiles: []models.ItemFile{{Items: list}},
		CatalogFiles: []models.CatalogFile{{Catalogs: []models.CatalogDef{
			{Key: models.CatalogMain, Name: "Catalog", Items: []models.CatalogEntry{{ID: "100"}, {ID: "101", Name: "Pumpkin Pie"}}},
		}}},
	}, testOverrides(t), nil)
	require.NoError(t, err)
	return db
}
