// Package license computes the materials still needed to license items.
//
// An item is a candidate when it has a license amount, is not marked
// licensed and its recorded progress is below the amount. Candidates can be
// narrowed by catalog, by whether their recipe was collected and by whether
// they come from a premium pack.
package license
