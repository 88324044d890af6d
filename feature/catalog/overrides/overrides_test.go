package overrides

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	ov := Default()

	assert.Equal(t, 99, ov.MinItemID)
	assert.True(t, ov.IsKnownDuplicate("Pumpkin"))
	assert.True(t, ov.IsKnownDuplicate("Where's My Kitty?"))
	assert.False(t, ov.IsKnownDuplicate("Flour"))
	assert.Equal(t, 238, ov.PlantIngredientIDs["Pumpkin"])
	assert.Equal(t, 920, ov.PlantIngredientIDs["Kelp"])
	assert.True(t, ov.SourceAllowList.Has("Experiment #127"))
	assert.Equal(t, "Decor: Violet Duck", ov.Correct("Violet Duck"))
	assert.Equal(t, "Flour", ov.Correct("Flour"))
	assert.Equal(t, FragmentWhole, ov.TaskChestPolicy(DailyScope))
	assert.Equal(t, FragmentAny, ov.TaskChestPolicy("Sun Festival"))
	assert.False(t, ov.IsDenied("Pumpkin"))
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/overrides.yaml", []byte(`
version: 1
min_item_id: 5
known_duplicate_names: [Tea]
denylist: [Secret Cake]
journey_recipe_whole_ids: [42]
task_chest_fragments:
  Phantom Isle: fragment
`), 0o644))

	ov, err := Load(fs, "/etc/overrides.yaml")
	require.NoError(t, err)
	assert.Equal(t, 5, ov.MinItemID)
	assert.True(t, ov.IsKnownDuplicate("Tea"))
	assert.True(t, ov.IsDenied("Secret Cake"))
	assert.True(t, ov.JourneyRecipeWhole(42))
	assert.Equal(t, FragmentOnly, ov.TaskChestPolicy("Phantom Isle"))
	assert.NotNil(t, ov.PlantIngredientIDs)
	assert.NotNil(t, ov.NameCorrections)
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Load(fs, "/missing.yaml")
	assert.ErrorContains(t, err, "not found")

	require.NoError(t, afero.WriteFile(fs, "/v2.yaml", []byte("version: 2\n"), 0o644))
	_, err = Load(fs, "/v2.yaml")
	assert.ErrorContains(t, err, "unsupported overrides version")

	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("version: 1\ntask_chest_fragments: {Daily: maybe}\n"), 0o644))
	_, err = Load(fs, "/bad.yaml")
	assert.ErrorContains(t, err, "unknown fragment policy")

	ov, err := Load(fs, "")
	require.NoError(t, err)
	assert.Equal(t, 99, ov.MinItemID)
}
