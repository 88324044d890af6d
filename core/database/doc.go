// Package database handles the connection to the collection database and
// schema inspection.
//
// It wraps GORM and supports two drivers: sqlite (the default, a local file)
// and mysql for a shared deployment.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table so the integrity checks can
// verify the collection schema after migration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "collected_items")
package database
