package importers

import (
	"catalog-manager/core/dataerr"
	"catalog-manager/core/tabular"
	"catalog-manager/feature/catalog/models"
)

const (
	journeyColCategory = 0
	journeyColName     = 1
)

var journeyCategories = map[string]models.Category{
	"Quest":       models.CategoryQuest,
	"Material":    models.CategoryMaterial,
	"Consumables": models.CategoryConsumables,
	"Gear":        models.CategoryGear,
}

// ImportJourneyCatalog parses the catalog tab of the journey sheet. Every row
// becomes a placeholder item; quest rows are also listed, by name, in the
// returned quest catalog.
func ImportJourneyCatalog(text string) ([]models.Item, models.CatalogDef, error) {
	quest := models.CatalogDef{
		Key:        models.CatalogQuest,
		Name:       "Autolog (Quest)",
		Icon:       models.ImageRef{LocalPath: "/catalog_quest.png"},
		Categories: []models.Category{models.CategoryQuest},
		Items:      []models.CatalogEntry{},
	}

	rows, err := tabular.Parse(text)
	if err != nil {
		return nil, quest, err
	}

	items := []models.Item{}
	for r := 1; r < len(rows); r++ {
		row := rows[r]
		name := tabular.Cell(row, journeyColName)
		if tabular.IsBlank(row) || skipName(name) {
			continue
		}
		raw := tabular.Cell(row, journeyColCategory)
		category, ok := journeyCategories[raw]
		if !ok {
			return nil, quest, dataerr.UnknownValue("category", raw).At(r+1, name)
		}
		if category == models.CategoryQuest {
			quest.Items = append(quest.Items, models.CatalogEntry{Name: name})
		}
		items = append(items, models.Item{ID: models.PlaceholderID, Name: name, Category: category})
	}
	return items, quest, nil
}
