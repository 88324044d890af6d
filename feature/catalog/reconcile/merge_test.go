package reconcile

import (
	"errors"
	"testing"

	"catalog-manager/core/dataerr"
	"catalog-manager/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeItem(t *testing.T) {
	prev := sampleItems()[101]
	next := models.Item{ID: 101, Name: "Pumpkin Pie", LicenseAmount: models.IntPtr(20)}

	out := MergeItem(prev, next)
	assert.Equal(t, 20, *out.LicenseAmount)
	assert.Equal(t, prev.Recipe, out.Recipe)
	assert.Equal(t, prev.Category, out.Category)
	assert.Equal(t, prev.Source, out.Source)
	assert.Equal(t, 10, *prev.LicenseAmount)
}

func TestIntegrate(t *testing.T) {
	db := sampleDatabase(t)
	log, logs := observedLogger()

	placeholders := []models.Item{
		{ID: models.PlaceholderID, Name: "Pumpkin Pie", LicenseAmount: models.IntPtr(20)},
		{ID: models.PlaceholderID, Name: "Kelp Salad", Category: models.CategoryConsumables,
			Recipe: &models.Recipe{CraftAmount: 1, Ingredient: []models.Ingredient{
				{Name: "Kelp", ID: models.PlaceholderID, Quantity: 2},
				{Name: "Salt", ID: models.PlaceholderID, Quantity: 1},
				{Name: "Pumpkin", ID: models.PlaceholderID, Quantity: 1},
			}}},
		{ID: models.PlaceholderID, Name: "Jam Waffles"},
	}

	out, err := Integrate(db, placeholders, testOverrides(t), log)
	require.NoError(t, err)

	pie := out.Items[101]
	assert.Equal(t, 20, *pie.LicenseAmount)
	require.NotNil(t, pie.Recipe)
	assert.Len(t, pie.Recipe.Ingredient, 2)

	// Kelp is seeded at 920, so new ids start after it.
	kelp := out.Items[920]
	assert.Equal(t, models.Item{ID: 920, Name: "Kelp", Category: models.CategoryMaterial}, kelp)
	assert.Equal(t, models.Item{ID: 921, Name: "Salt", Category: models.CategoryMaterial}, out.Items[921])

	salad := out.Items[922]
	assert.Equal(t, "Kelp Salad", salad.Name)
	require.NotNil(t, salad.Recipe)
	assert.Equal(t, []int{920, 921, 238}, []int{
		salad.Recipe.Ingredient[0].ID, salad.Recipe.Ingredient[1].ID, salad.Recipe.Ingredient[2].ID,
	})

	assert.NotContains(t, out.Items, models.PlaceholderID)
	assert.Equal(t, 1, logs.FilterMessage("Ignoring imported item with a duplicate name").Len())

	assert.Len(t, db.Items, 3, "input is not modified")
	assert.Equal(t, 10, *db.Items[101].LicenseAmount)
	assert.Equal(t, 238, out.MaxIDOnFirstLoad)
}

func TestIntegrateUnresolvedDuplicateIngredient(t *testing.T) {
	db := sampleDatabase(t)
	placeholders := []models.Item{
		{ID: models.PlaceholderID, Name: "Waffle Tower",
			Recipe: &models.Recipe{CraftAmount: 1, Ingredient: []models.Ingredient{
				{Name: "Jam Waffles", Quantity: 3},
			}}},
	}

	_, err := Integrate(db, placeholders, testOverrides(t), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataerr.UnresolvedIngredient))
}

func TestIntegrateKeepsCatalogsResolved(t *testing.T) {
	db := sampleDatabase(t)
	db, err := ReplaceCatalog(db, models.CatalogDef{
		Key:   models.CatalogQuest,
		Items: []models.CatalogEntry{{Name: "Salt"}},
	}, testOverrides(t), nil)
	require.NoError(t, err)
	assert.Empty(t, db.Catalogs[models.CatalogQuest].ItemSet.IDs())

	out, err := Integrate(db, []models.Item{{ID: models.PlaceholderID, Name: "Salt"}}, testOverrides(t), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{921}, out.Catalogs[models.CatalogQuest].ItemSet.IDs())
}

func TestIntegrateSources(t *testing.T) {
	ov := testOverrides(t)
	wheat := harvest("Wheat")
	imp := models.ImportedSources{
		Names:   []string{"Flour"},
		Sources: map[string]models.SourceList{"Flour": {dailyChest(false), wheat}},
	}

	t.Run("replace", func(t *testing.T) {
		out, err := IntegrateSources(sampleDatabase(t), imp, false, ov, nil)
		require.NoError(t, err)
		assert.Equal(t, models.SourceList{dailyChest(false), wheat}, out.Items[100].Source)
		assert.Contains(t, out.Sources, models.SourceKey("Harvest__Wheat"))
	})

	t.Run("keep old", func(t *testing.T) {
		db := sampleDatabase(t)
		flour := db.Items[100]
		flour.Source = models.SourceList{harvest("Oats"), dailyChest(false)}
		db.Items[100] = flour

		out, err := IntegrateSources(db, imp, true, ov, nil)
		require.NoError(t, err)
		assert.Equal(t, models.SourceList{harvest("Oats"), dailyChest(false), wheat}, out.Items[100].Source)
	})

	t.Run("missing item", func(t *testing.T) {
		bad := models.ImportedSources{Names: []string{"Flourr"}}
		_, err := IntegrateSources(sampleDatabase(t), bad, false, ov, nil)
		require.Error(t, err)

		var de *dataerr.Error
		require.ErrorAs(t, err, &de)
		assert.Equal(t, dataerr.MissingItem, de.Kind)
		assert.Equal(t, []string{"Flour"}, de.Suggestions)
	})
}

func TestIntegrateIcons(t *testing.T) {
	log, logs := observedLogger()
	db := sampleDatabase(t)

	out := IntegrateIcons(db, []models.NamedIcon{
		{Name: "Flour", Path: "a/ab/Flour.png"},
		{Name: "Ghost Pepper", Path: "g/gh/Ghost_Pepper.png"},
	}, log)

	require.NotNil(t, out.Items[100].Image)
	assert.Equal(t, "a/ab/Flour.png", out.Items[100].Image.FandomWikiImagePath)
	assert.Nil(t, db.Items[100].Image)

	warned := logs.FilterMessage("Could not find item for icon").All()
	require.Len(t, warned, 1)
	assert.Equal(t, "Ghost Pepper", warned[0].ContextMap()["name"])
}
