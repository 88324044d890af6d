package checks

import (
	"fmt"
	"reflect"
	"strings"

	"catalog-manager/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of a schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies that the database carries a table for every model,
// using the gorm column tags of the model as the source of truth.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range models {
		tabler, ok := model.(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %T does not implement TableName", model)
		}
		table := tabler.TableName()

		missing, err := database.MissingColumns(db, table, ModelColumns(model))
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{MissingColumns: []string{}, Status: "ok"}
		if len(missing) > 0 {
			tbl.MissingColumns = missing
			tbl.Status = "error"
			report.Matched = false
		}
		report.Tables[table] = tbl
	}

	return report, nil
}

// ModelColumns lists the column names declared in the gorm tags of model.
func ModelColumns(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var cols []string
	for i := 0; i < t.NumField(); i++ {
		if col := parseGormColumn(t.Field(i).Tag.Get("gorm")); col != "" {
			cols = append(cols, col)
		}
	}
	return cols
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
