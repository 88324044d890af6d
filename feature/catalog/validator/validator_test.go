package validator

import (
	"testing"

	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/overrides"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func src(t *testing.T, f models.SourceFields) models.Source {
	t.Helper()
	s, err := models.ParseSource(f)
	require.NoError(t, err)
	return s
}

func database(items ...models.Item) *models.Database {
	db := &models.Database{Items: make(map[int]models.Item)}
	for _, it := range items {
		db.Items[it.ID] = it
	}
	db.Sources = make(map[models.SourceKey]models.SourceDetails)
	for _, it := range items {
		for _, s := range it.Source {
			key := models.SourceKeyOf(s)
			d := db.Sources[key]
			d.Source = s
			d.Drops = append(d.Drops, models.DropDetail{ItemID: it.ID, Kind: s.Drop().Kind, Fragment: s.Drop().Fragment})
			db.Sources[key] = d
		}
	}
	return db
}

func rules(r Report) []Rule {
	out := make([]Rule, len(r.Warnings))
	for i, w := range r.Warnings {
		out[i] = w.Rule
	}
	return out
}

func TestValidateClean(t *testing.T) {
	flour := models.Item{ID: 100, Name: "Flour", Category: models.CategoryMaterial,
		Source: models.SourceList{src(t, models.SourceFields{Type: models.TypeMarket, Kind: models.KindItem, Name: "Materials"})}}
	bread := models.Item{ID: 101, Name: "Bread", Category: models.CategoryConsumables,
		Recipe: &models.Recipe{CraftAmount: 1, Ingredient: []models.Ingredient{{Name: "Flour", ID: 100, Quantity: 2}}},
		Source: models.SourceList{src(t, models.SourceFields{Type: models.TypeTaskChest, Kind: models.KindRecipe, Subtype: "Daily"})}}

	report := Validate(database(flour, bread), overrides.Default())
	assert.True(t, report.Empty(), "%v", report.Warnings)
}

func TestValidateItemRules(t *testing.T) {
	tests := []struct {
		name string
		item models.Item
		want []Rule
	}{
		{
			name: "recipe without recipe source",
			item: models.Item{ID: 200, Name: "Cake", Category: models.CategoryConsumables,
				Recipe: &models.Recipe{CraftAmount: 1},
				Source: models.SourceList{src(t, models.SourceFields{Type: models.TypeShifty, Kind: models.KindItem})}},
			want: []Rule{RecipeWithoutRecipeSource},
		},
		{
			name: "recipe source without recipe",
			item: models.Item{ID: 200, Name: "Cake", Category: models.CategoryDecor,
				Source: models.SourceList{src(t, models.SourceFields{Type: models.TypeShifty, Kind: models.KindRecipe})}},
			want: []Rule{RecipeSourceWithoutRecipe},
		},
		{
			name: "material fragment",
			item: models.Item{ID: 200, Name: "Salt", Category: models.CategoryMaterial,
				Source: models.SourceList{src(t, models.SourceFields{Type: models.TypeShifty, Kind: models.KindItem, Fragment: true})}},
			want: []Rule{ImplausibleFragment},
		},
		{
			name: "whole journey recipe",
			item: models.Item{ID: 200, Name: "Lamp", Category: models.CategoryDecor,
				Recipe: &models.Recipe{CraftAmount: 1},
				Source: models.SourceList{src(t, models.SourceFields{Type: models.TypeJourney, Kind: models.KindRecipe, Name: "Lights"})}},
			want: []Rule{JourneyRecipeNotFragment},
		},
		{
			name: "daily chest fragment",
			item: models.Item{ID: 200, Name: "Scarf", Category: models.CategoryCosmetic,
				Source: models.SourceList{src(t, models.SourceFields{Type: models.TypeTaskChest, Kind: models.KindItem, Fragment: true, Subtype: "Daily"})}},
			want: []Rule{TaskChestFragmentPolicy},
		},
		{
			name: "event chest fragment allowed",
			item: models.Item{ID: 200, Name: "Scarf", Category: models.CategoryCosmetic,
				Source: models.SourceList{src(t, models.SourceFields{Type: models.TypeTaskChest, Kind: models.KindItem, Fragment: true, Subtype: string(models.EventSunFestival)})}},
			want: []Rule{},
		},
		{
			name: "combine target missing",
			item: models.Item{ID: 200, Name: "Totem", Category: models.CategoryGear,
				Source: models.SourceList{src(t, models.SourceFields{Type: models.TypeCombine, Kind: models.KindItem, Name: "Totem Half", ID: "999"})}},
			want: []Rule{CombineTargetMissing},
		},
		{
			name: "ingredient mismatch and craft amount",
			item: models.Item{ID: 200, Name: "Pie", Category: models.CategoryConsumables,
				Recipe: &models.Recipe{Ingredient: []models.Ingredient{
					{Name: "Flour", ID: 100, Quantity: 1},
					{Name: "Sugar", ID: 100, Quantity: 1},
					{Name: "Egg", ID: 404, Quantity: 1},
				}}},
			want: []Rule{InvalidCraftAmount, IngredientMismatch, IngredientMismatch},
		},
	}

	flour := models.Item{ID: 100, Name: "Flour", Category: models.CategoryMaterial}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Validate(database(flour, tt.item), overrides.Default())
			assert.Equal(t, tt.want, rules(report))
			for _, w := range report.Warnings {
				assert.Equal(t, 200, w.ItemID)
				assert.NotEmpty(t, w.Message)
			}
		})
	}
}

func TestValidateJourneyException(t *testing.T) {
	ov, err := overrides.Parse([]byte("version: 1\njourney_recipe_whole_ids: [200]\n"))
	require.NoError(t, err)

	lamp := models.Item{ID: 200, Name: "Lamp", Category: models.CategoryDecor,
		Recipe: &models.Recipe{CraftAmount: 1},
		Source: models.SourceList{src(t, models.SourceFields{Type: models.TypeJourney, Kind: models.KindRecipe, Name: "Lights"})}}

	assert.True(t, Validate(database(lamp), ov).Empty())
}

func TestValidateSourceIndex(t *testing.T) {
	shifty := src(t, models.SourceFields{Type: models.TypeShifty, Kind: models.KindItem})
	db := database(models.Item{ID: 100, Name: "Flour", Category: models.CategoryMaterial})
	db.Sources["Shifty__"] = models.SourceDetails{Source: shifty, Drops: []models.DropDetail{{ItemID: 7}}}
	db.Sources["Wrong_Key_"] = models.SourceDetails{Source: shifty}

	report := Validate(db, overrides.Default())
	assert.Equal(t, []Rule{SourceKeyMismatch, DanglingDrop}, rules(report))
	assert.Equal(t, map[Rule]int{SourceKeyMismatch: 1, DanglingDrop: 1}, report.Count())
}

func TestReportLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	report := Report{Warnings: []Warning{{Rule: DanglingDrop, ItemID: 7, Message: "source drops unknown item 7"}}}

	report.Log(zap.New(core))

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, "source drops unknown item 7", warns[0].Message)
	assert.Equal(t, "dangling-drop", warns[0].ContextMap()["rule"])
}
