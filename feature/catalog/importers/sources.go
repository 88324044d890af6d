package importers

import (
	"strings"

	"catalog-manager/core/dataerr"
	"catalog-manager/core/logger"
	"catalog-manager/core/tabular"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/overrides"

	"go.uber.org/zap"
)

// Item-source sheet columns.
const (
	sourceColItem     = 0
	sourceColKind     = 6
	sourceColFragment = 7
	sourceColType     = 8
	sourceColSubtype  = 9
	sourceColName     = 12
)

// sheetEvents maps the event labels used by the sheet to event types.
var sheetEvents = map[string]models.EventType{
	"Sun Festival":            models.EventSunFestival,
	"Flooded Expedition":      models.EventFloodedExpedition,
	"Phantom Isle - Phase 1":  models.EventPhantomIslePart1,
	"Phantom Isle - Phase 2":  models.EventPhantomIslePart2,
	"Phantom Isle - Phase 3":  models.EventPhantomIslePart3,
	"Evercold Isle - Phase 1": models.EventEvercoldIslePart1,
	"Evercold Isle - Phase 2": models.EventEvercoldIslePart2,
}

// ImportSourceSheet parses the item-source sheet into sources keyed by item
// name.
//
// Only rows whose raw item name is on the provenance allow-list are imported;
// the others are counted in UnsafeSkipped. Source types the sheet does not
// describe reliably are skipped with an info line.
func ImportSourceSheet(text string, ov *overrides.Overrides, log *zap.Logger) (models.ImportedSources, error) {
	log = logger.OrNop(log)
	var out models.ImportedSources

	rows, err := tabular.Parse(text)
	if err != nil {
		return out, err
	}

	for r, row := range rows {
		raw := tabular.Cell(row, sourceColItem)
		switch {
		case raw == "":
			continue
		case raw == "Name" && tabular.Cell(row, sourceColType) == "Type":
			continue
		case strings.HasPrefix(raw, "_Example"):
			log.Debug("Skipping example row", zap.Int("row", r+1))
			continue
		case strings.Contains(raw, "?"), strings.Contains(tabular.Cell(row, sourceColName), "?"):
			continue
		case tabular.Cell(row, sourceColKind) == "":
			continue
		case !ov.SourceAllowList.Has(raw):
			out.UnsafeSkipped++
			continue
		}

		name := ov.Correct(FormatItemName(raw))
		if ov.IsDenied(name) {
			continue
		}

		src, err := sourceRow(row)
		if err != nil {
			return models.ImportedSources{}, locate(err, r+1, name)
		}
		if src == nil {
			log.Info("Skipping unsupported source type",
				zap.String("type", tabular.Cell(row, sourceColType)),
				zap.String("item", name))
			continue
		}
		out.Add(name, src)
	}

	log.Info("Imported item sources",
		zap.Int("items", len(out.Names)),
		zap.Int("unsafe_skipped", out.UnsafeSkipped))
	return out, nil
}

// sourceRow builds the source described by row. Known types the sheet is not
// trusted for return a nil source.
func sourceRow(row []string) (models.Source, error) {
	t, err := models.ParseSourceType(tabular.Cell(row, sourceColType))
	if err != nil {
		return nil, err
	}
	kind, err := sheetKind(tabular.Cell(row, sourceColKind))
	if err != nil {
		return nil, err
	}
	fragment, err := sheetBool(tabular.Cell(row, sourceColFragment))
	if err != nil {
		return nil, err
	}

	f := models.SourceFields{
		Type:     t,
		Kind:     kind,
		Fragment: fragment,
		Name:     tabular.Cell(row, sourceColName),
	}
	subtype := tabular.Cell(row, sourceColSubtype)

	switch t {
	case models.TypeOutpost, models.TypeCity:
		f.Subtype = subtype
	case models.TypeHarvest, models.TypeMissionReward:
	case models.TypeBattle, models.TypeJourney, models.TypeEventMarket:
		if f.Subtype, err = sheetEvent(subtype); err != nil {
			return nil, err
		}
	case models.TypeTask, models.TypeTaskChest:
		if subtype == string(models.TaskDaily) || subtype == string(models.TaskOutpost) {
			f.Subtype = subtype
		} else if f.Subtype, err = sheetEvent(subtype); err != nil {
			return nil, err
		}
	default:
		return nil, nil
	}
	return models.ParseSource(f)
}

func sheetKind(v string) (models.DropKind, error) {
	switch v {
	case "Item":
		return models.KindItem, nil
	case "Recipe":
		return models.KindRecipe, nil
	}
	return "", dataerr.UnknownValue("kind", v)
}

func sheetBool(v string) (bool, error) {
	switch v {
	case "TRUE":
		return true, nil
	case "FALSE":
		return false, nil
	}
	return false, dataerr.Malformed(0, "fragment", v)
}

func sheetEvent(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	if ev, ok := sheetEvents[v]; ok {
		return string(ev), nil
	}
	if ev, err := models.ParseEventType(v); err == nil {
		return string(ev), nil
	}
	return "", dataerr.UnknownValue("event", v)
}
