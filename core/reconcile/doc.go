// Package reconcile compares two snapshots of keyed entities, the committed
// one and a candidate, and turns the difference into a reviewable plan.
//
// It is used to preview a spreadsheet import before it replaces the catalog:
// the import builds a new snapshot, the plan lists what would be added or
// changed, and only a confirmed, non dry-run plan reaches the Committer.
//
// # Architecture
//
// 1. Engine: loads both snapshots concurrently, builds the union of keys and
//    detects presence/absence and field mismatches.
//
// 2. Adapter: model-specific key extraction, naming and field comparison.
//
// 3. Plan: summary counts plus add/update actions. Removals are reported but
//    never planned.
//
// 4. Cache: TTL-based generic cache with stampede protection, used to reuse
//    loaded snapshots.
//
// # Usage Example
//
//	spec := &reconcile.Spec{Adapter: adapter, Current: loadCommitted, Incoming: loadImported}
//	plan, err := reconcile.ReconcileWithPlan(ctx, spec)
//	n, err := reconcile.ApplyPlan(ctx, plan, committer, reconcile.ReconcileOptions{Confirmed: true})
package reconcile
