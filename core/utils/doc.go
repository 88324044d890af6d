// Package utils provides small conversion helpers shared by the HTTP handlers,
// the CLI and the spreadsheet importers.
package utils
