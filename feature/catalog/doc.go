// Package catalog serves the catalog database: it loads data files into a
// committed snapshot, imports spreadsheet exports into it and writes exports
// back to the data store.
//
// # Imports
//
// An import never edits the committed snapshot. The sheet is parsed by the
// importers package, folded into a copy by the reconcile package and
// validated. The item changes are then planned with the generic diff engine
// of core/reconcile, using ItemAdapter. Only a confirmed, non dry-run import
// replaces the snapshot.
//
// # Routes
//
//	GET  /catalog/items[/:id]
//	GET  /catalog/sources[/:key]
//	GET  /catalog/catalogs/:key
//	POST /catalog/import/:sheet
//	GET  /catalog/export/{items,new,catalog/:key}
//	GET  /catalog/validate
//	POST /catalog/reload
package catalog
