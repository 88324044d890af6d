// Package dataerr defines the structured errors raised while building,
// importing and merging catalog data.
//
// Every fatal condition carries a Kind, which doubles as a sentinel:
//
//	if errors.Is(err, dataerr.DuplicateItemID) {
//	    // ...
//	}
//
// The Error value itself keeps the offending id, name, row or value so
// callers can report them without parsing a message.
package dataerr
