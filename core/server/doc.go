// Package server holds the HTTP server configuration.
//
// The main entry point (cmd/start.go) owns the Fiber application; this package
// only describes the listen port, the API key protecting every route and the
// request body limit used for spreadsheet uploads.
package server
