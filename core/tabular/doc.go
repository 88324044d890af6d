// Package tabular parses the comma separated exports produced by the
// community spreadsheets.
//
// The parser is intentionally small: rows are split on line breaks, cells on
// commas outside double quoted fields, and there is no notion of a header.
// Callers address cells by index through Cell, which tolerates short rows.
package tabular
