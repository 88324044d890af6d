// Package models defines the catalog data model: items, recipes, the closed
// set of acquisition sources, catalogs and the derived Database.
//
// Values are treated as immutable. Engine code builds new maps and items
// instead of editing existing ones, so a committed Database can be shared
// between readers without locking.
//
// # Sources
//
// Source is a sealed interface with one struct per source type. Each struct
// only carries the fields that are legal for its type, and ParseSource is the
// single entry point that turns the flat wire form (SourceFields) into a
// variant, rejecting values outside the closed vocabularies with
// dataerr.UnknownEnumValue.
package models
