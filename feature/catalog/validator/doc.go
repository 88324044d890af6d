// Package validator runs advisory consistency checks over a catalog
// database. It never changes the database and never fails; findings are
// returned as warnings for the caller to log or display.
package validator
