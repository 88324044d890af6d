// Package integrity provides system health checks.
//
// Unlike the catalog validator, which looks at the content of the merged
// catalog, this package validates the data store and the collection
// database the service depends on.
//
// # Checks Provided
//
//   - Structure: every data folder (items, catalogs, source-images) holds at least one data file.
//   - Files: every data file is valid JSON carrying its top-level array.
//   - Schema: the collection tables carry every column of their gorm model.
//   - Catalog: the catalog consistency checks of the committed snapshot.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/files : Runs data file check.
//   - GET /integrity/schema : Runs collection schema check.
//   - GET /integrity/catalog : Runs catalog consistency check.
package integrity
