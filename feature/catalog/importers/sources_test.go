package importers

import (
	"errors"
	"strings"
	"testing"

	"catalog-manager/core/dataerr"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/overrides"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// sourceRowText lays out a sheet row with the columns the importer reads.
func sourceRowText(item, kind, fragment, typ, subtype, name string) string {
	cells := make([]string, 13)
	cells[sourceColItem] = item
	cells[sourceColKind] = kind
	cells[sourceColFragment] = fragment
	cells[sourceColType] = typ
	cells[sourceColSubtype] = subtype
	cells[sourceColName] = name
	return strings.Join(cells, ",")
}

func TestImportSourceSheet(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sheet := strings.Join([]string{
		sourceRowText("", "", "", "", "", ""),
		sourceRowText("Name", "Kind", "Fragment", "Type", "Subtype", "Name"),
		sourceRowText("_Example Pie", "Item", "FALSE", "Outpost", "Shop", "Trading"),
		sourceRowText("Butter", "Item", "FALSE", "Outpost", "Shop", "Trading"),
		sourceRowText("Spectral Noodles", "Recipe", "TRUE", "Journey", "Phantom Isle - Phase 1", "Ghost Road"),
		sourceRowText("Blender", "Item", "FALSE", "Task Chest", "Daily", ""),
		sourceRowText("Butter", "Item", "FALSE", "Shifty", "", ""),
		sourceRowText("Secret Sauce", "Item", "FALSE", "Outpost", "Shop", "Trading"),
		sourceRowText("Sunscreen", "", "", "Outpost", "Shop", "Trading"),
		sourceRowText("Blender", "Item", "FALSE", "Battle", "Flooded Expedition", "Kraken?"),
	}, "\n")

	imp, err := ImportSourceSheet(sheet, overrides.Default(), zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, []string{"Butter", "Spectral Noodle", "Blender"}, imp.Names)
	assert.Equal(t, 1, imp.UnsafeSkipped)

	assert.Equal(t, models.SourceList{
		models.OutpostSource{Base: models.Base{Kind: models.KindItem}, Subtype: "Shop", Name: models.OutpostTrading},
	}, imp.Sources["Butter"])
	assert.Equal(t, models.SourceList{
		models.JourneySource{
			Base:  models.Base{Kind: models.KindRecipe, Fragment: true},
			Event: models.EventPhantomIslePart1,
			Name:  "Ghost Road",
		},
	}, imp.Sources["Spectral Noodle"])
	assert.Equal(t, models.SourceList{
		models.TaskChestSource{Base: models.Base{Kind: models.KindItem}, Scope: models.TaskDaily},
	}, imp.Sources["Blender"])

	assert.Equal(t, 1, logs.FilterMessage("Skipping unsupported source type").Len())
}

func TestImportSourceSheetDenylist(t *testing.T) {
	ov, err := overrides.Parse([]byte(`
version: 1
source_allow_list: [Butter]
denylist: [Butter]
`))
	require.NoError(t, err)

	imp, err := ImportSourceSheet(sourceRowText("Butter", "Item", "FALSE", "Outpost", "Shop", "Trading"), ov, nil)
	require.NoError(t, err)
	assert.Empty(t, imp.Names)
}

func TestImportSourceSheetErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		kind dataerr.Kind
	}{
		{"unknown type", sourceRowText("Butter", "Item", "FALSE", "Teleporter", "", ""), dataerr.UnknownEnumValue},
		{"unknown kind", sourceRowText("Butter", "Blueprint", "FALSE", "Outpost", "Shop", "Trading"), dataerr.UnknownEnumValue},
		{"bad fragment flag", sourceRowText("Butter", "Item", "maybe", "Outpost", "Shop", "Trading"), dataerr.MalformedRow},
		{"unknown event", sourceRowText("Butter", "Item", "FALSE", "Event Market", "Phantom Isle - Phase 9", ""), dataerr.UnknownEnumValue},
		{"unknown outpost", sourceRowText("Butter", "Item", "FALSE", "Outpost", "Shop", "Desert"), dataerr.UnknownEnumValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportSourceSheet(tt.row, overrides.Default(), nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind))

			var de *dataerr.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, 1, de.Row)
			assert.Equal(t, "Butter", de.Name)
		})
	}
}
