// Package importers parses community spreadsheet and wiki exports into
// placeholder items and sources.
//
// Every importer works on a fixed column layout and is strict about the
// values it understands: an unknown enumeration or an unparseable flag is a
// dataerr error located at the offending row. Rows that are blank, look like
// headers, or carry a '?' in their name are skipped without a log line.
//
// Imported items carry models.PlaceholderID; ids are assigned later when the
// items are integrated into a database.
package importers
