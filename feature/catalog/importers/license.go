package importers

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"catalog-manager/core/dataerr"
	"catalog-manager/core/tabular"
	"catalog-manager/feature/catalog/models"
)

// License sheet columns.
const (
	licenseColName        = 0
	licenseColCategory    = 1
	licenseColAmount      = 2
	licenseColCraftAmount = 6
	licenseColTotalCrafts = 7
	licenseColIngredients = 8
)

var licenseCategories = map[string]models.Category{
	"GEAR":        models.CategoryGear,
	"MATERIAL":    models.CategoryMaterial,
	"CONSUMABLES": models.CategoryConsumables,
	"DECOR":       models.CategoryDecor,
	"QUEST":       models.CategoryQuest,
	"PLANT":       models.CategoryPlant,
	"COSMETIC":    models.CategoryCosmetic,
}

// ImportLicenseSheet parses the license calculator export.
//
// Row 0 holds totals and is ignored. Row 1 names the ingredient columns
// starting at column 8. Every further row is an item whose ingredient cells
// hold the total needed for the whole license, so the per-craft quantity is
// total divided by the number of crafts.
func ImportLicenseSheet(text string) ([]models.Item, error) {
	rows, err := tabular.Parse(text)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, dataerr.Malformed(len(rows), "license sheet", "missing ingredient header row")
	}

	header := rows[1]
	ingredientNames := make([]string, len(header))
	for c := licenseColIngredients; c < len(header); c++ {
		ingredientNames[c] = FormatItemName(header[c])
	}

	items := []models.Item{}
	for r := 2; r < len(rows); r++ {
		row := rows[r]
		raw := tabular.Cell(row, licenseColName)
		if tabular.IsBlank(row) || skipName(raw) {
			continue
		}
		it, err := licenseRow(row, ingredientNames)
		if err != nil {
			return nil, locate(err, r+1, FormatItemName(raw))
		}
		items = append(items, it)
	}
	return items, nil
}

func licenseRow(row, ingredientNames []string) (models.Item, error) {
	name := FormatItemName(tabular.Cell(row, licenseColName))

	category, ok := licenseCategories[strings.ToUpper(tabular.Cell(row, licenseColCategory))]
	if !ok {
		return models.Item{}, dataerr.UnknownValue("category", tabular.Cell(row, licenseColCategory))
	}
	license, err := intCell(row, licenseColAmount, "license amount")
	if err != nil {
		return models.Item{}, err
	}
	craft, err := intCell(row, licenseColCraftAmount, "craft amount")
	if err != nil {
		return models.Item{}, err
	}
	crafts, err := intCell(row, licenseColTotalCrafts, "total crafts")
	if err != nil {
		return models.Item{}, err
	}
	if craft > 0 && crafts != int(math.Ceil(float64(license)/float64(craft))) {
		return models.Item{}, dataerr.Malformed(0, "total crafts", tabular.Cell(row, licenseColTotalCrafts))
	}

	var ingredients []models.Ingredient
	for c := licenseColIngredients; c < len(row); c++ {
		if row[c] == "" {
			continue
		}
		total, err := intCell(row, c, "ingredient total")
		if err != nil {
			return models.Item{}, err
		}
		if crafts == 0 {
			return models.Item{}, dataerr.Malformed(0, "total crafts", tabular.Cell(row, licenseColTotalCrafts))
		}
		ingName := ""
		if c < len(ingredientNames) {
			ingName = ingredientNames[c]
		}
		if ingName == "" {
			return models.Item{}, dataerr.Malformed(0, "ingredient column "+strconv.Itoa(c), row[c])
		}
		ingredients = append(ingredients, models.Ingredient{
			Name:     ingName,
			ID:       models.PlaceholderID,
			Quantity: float64(total) / float64(crafts),
		})
	}
	if len(ingredients) > 0 && craft == 0 {
		return models.Item{}, dataerr.Malformed(0, "craft amount", tabular.Cell(row, licenseColCraftAmount))
	}

	it := models.Item{ID: models.PlaceholderID, Name: name, Category: category}
	if license > 0 {
		it.LicenseAmount = models.IntPtr(license)
	}
	if len(ingredients) > 0 {
		it.Recipe = &models.Recipe{Ingredient: ingredients, CraftAmount: craft}
	}
	return it, nil
}

// intCell reads an integer column. An empty cell counts as zero.
func intCell(row []string, col int, field string) (int, error) {
	v := tabular.Cell(row, col)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(v, ",", ""))
	if err != nil {
		return 0, dataerr.Malformed(0, field, v)
	}
	return n, nil
}

func locate(err error, row int, name string) error {
	var de *dataerr.Error
	if errors.As(err, &de) {
		return de.At(row, name)
	}
	return err
}
