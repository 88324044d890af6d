// Package reconcile is the catalog reconciliation engine.
//
// Every function here is a pure transform: it receives a Database snapshot
// and returns a new one, leaving the input untouched. Callers decide whether
// to commit the result.
//
// # Stages
//
//   - Build: item, catalog and source-image files into a Database.
//   - RebuildSources: the source index derived from the items' sources.
//   - ReconcileCatalog(s): catalog entries resolved to item ids.
//   - Integrate, IntegrateSources, IntegrateIcons, ReplaceCatalog: spreadsheet
//     imports folded into a snapshot.
//   - Export*: the file shapes written back to disk.
//
// Name resolution goes through NameIndex, which knows the names shared by
// several items and refuses to resolve them.
package reconcile
