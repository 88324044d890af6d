package reconcile

import (
	"errors"
	"testing"

	"catalog-manager/core/dataerr"
	"catalog-manager/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	db := sampleDatabase(t)

	assert.Len(t, db.Items, 3)
	assert.Equal(t, 238, db.MaxIDOnFirstLoad)
	assert.Len(t, db.Sources, 2)

	main, ok := db.Catalogs[models.CatalogMain]
	require.True(t, ok)
	assert.True(t, main.ItemSet.Has(100))
	assert.True(t, main.ItemSet.Has(101))
}

func TestBuildSourceImages(t *testing.T) {
	img := &models.ImageRef{LocalPath: "/sources/pumpkin.png"}
	db, err := Build(BuildInput{
		ItemFiles: []models.ItemFile{{Items: []models.Item{sampleItems()[238]}}},
		SourceImageFiles: []models.SourceImageFile{{Images: []models.SourceImage{
			{Type: models.TypeHarvest, Name: "Pumpkin", Src: img},
		}}},
	}, testOverrides(t), nil)
	require.NoError(t, err)
	assert.Same(t, img, db.Sources["Harvest__Pumpkin"].ImageSrc)
}

func TestBuildDropsFollowItemIDs(t *testing.T) {
	items := sampleItems()
	db, err := Build(BuildInput{
		ItemFiles: []models.ItemFile{
			{Items: []models.Item{items[238]}},
			{Items: []models.Item{items[101], items[100]}},
		},
	}, testOverrides(t), nil)
	require.NoError(t, err)

	pumpkin := db.Sources["Harvest__Pumpkin"]
	require.Len(t, pumpkin.Drops, 2)
	assert.Equal(t, 101, pumpkin.Drops[0].ItemID)
	assert.Equal(t, 238, pumpkin.Drops[1].ItemID)

	assert.Equal(t, db.Sources, RebuildSources(db.Items, db.Sources))
}

func TestBuildDuplicateID(t *testing.T) {
	_, err := Build(BuildInput{
		ItemFiles: []models.ItemFile{
			{Items: []models.Item{{ID: 100, Name: "Flour"}}},
			{Items: []models.Item{{ID: 100, Name: "Sugar"}}},
		},
	}, testOverrides(t), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataerr.DuplicateItemID))
}

func TestBuildDuplicateName(t *testing.T) {
	_, err := Build(BuildInput{
		ItemFiles: []models.ItemFile{{Items: []models.Item{
			{ID: 100, Name: "Flour"},
			{ID: 110, Name: "Flour"},
		}}},
	}, testOverrides(t), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataerr.DuplicateItemName))
}

func TestBuildDuplicateCatalogKey(t *testing.T) {
	_, err := Build(BuildInput{
		CatalogFiles: []models.CatalogFile{
			{Catalogs: []models.CatalogDef{{Key: models.CatalogMain}}},
			{Catalogs: []models.CatalogDef{{Key: models.CatalogMain}}},
		},
	}, testOverrides(t), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataerr.DuplicateCatalogKey))
}
