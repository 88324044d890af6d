package catalog

import (
	"testing"

	"catalog-manager/core/datastore"
	"catalog-manager/feature/catalog/overrides"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	itemsJSON = `{"items": [
  {"id": 100, "name": "Flour", "category": "Material",
   "source": [{"type": "Task Chest", "kind": "item", "fragment": false, "subtype": "Daily"}]},
  {"id": 238, "name": "Pumpkin", "category": "Plant",
   "source": [{"type": "Harvest", "kind": "item", "fragment": false, "name": "Pumpkin"}]}
]}`
	catalogsJSON = `{"catalogs": [
  {"key": "main", "name": "Catalog", "icon": {"local_path": "/catalog.png"}, "items": [["100"], ["", "Pumpkin"]]}
]}`
	sourceImagesJSON = `{"images": [
  {"type": "Harvest", "name": "Pumpkin", "src": {"local_path": "/pumpkin.png"}}
]}`

	licenseCSV = ",,,,,,,,2\n" +
		"Name,Category,License,Storage,Progress,Left,Per Craft,Crafts,FLOUR\n" +
		"PUMPKIN BREAD,CONSUMABLES,4,,,,2,2,4\n"
)

func testOverrides(t *testing.T) *overrides.Overrides {
	t.Helper()
	ov, err := overrides.Parse([]byte(`
version: 1
min_item_id: 99
known_duplicate_names: [Pumpkin]
plant_ingredient_ids:
  Pumpkin: 238
source_allow_list: [Flour]
`))
	require.NoError(t, err)
	return ov
}

type fixture struct {
	fs      afero.Fs
	data    datastore.Store
	store   *Store
	service *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data/items/base.json", []byte(itemsJSON), 0o644))
	require.NoError(t, afero.WriteFile(fs, "data/catalogs/main.json", []byte(catalogsJSON), 0o644))
	require.NoError(t, afero.WriteFile(fs, "data/source-images/images.json", []byte(sourceImagesJSON), 0o644))

	data := datastore.NewFSStore(fs, "data")
	store := NewStore(data, testOverrides(t), 0, zap.NewNop())
	return &fixture{
		fs:      fs,
		data:    data,
		store:   store,
		service: NewService(store, data, "export", zap.NewNop()),
	}
}
