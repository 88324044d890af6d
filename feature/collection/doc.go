// Package collection stores the player's per-item collection state.
//
// Rows live in the collected_items table and are keyed by catalog item id.
// Items without a row are treated as unseen and unlicensed. The whole table
// can be exported to and imported from a flat JSON file of the form
//
//	{"items": {"<id>": {...}}}
//
// Routes:
//
//	GET  /collection
//	GET  /collection/export
//	POST /collection/import
//	GET  /collection/:id
//	PUT  /collection/:id
//	POST /collection/:id/observe
//	POST /collection/:id/licensed
package collection
