package reconcile

import "context"

// Adapter defines the model-specific part of a comparison: how entities are
// keyed, named and compared. Either argument of the two-sided methods may be
// nil when the entity exists on one side only.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g., "items").
	Name() string

	// ExtractKey returns the entity key used to match both snapshots.
	ExtractKey(e Entity) string

	// ResolveName returns the display name given the current and/or incoming entity.
	ResolveName(current, incoming Entity) string

	// CompareFields returns a description per differing field. Both
	// arguments are non-nil when this is called.
	CompareFields(current, incoming Entity) []string

	// GetMetadata returns model-specific metadata for the result.
	GetMetadata(current, incoming Entity) map[string]string
}

// Committer applies an accepted plan.
type Committer interface {
	Commit(ctx context.Context, plan *ReconcilePlan) error
}

// CommitFunc adapts a function to the Committer interface.
type CommitFunc func(ctx context.Context, plan *ReconcilePlan) error

// Commit calls f.
func (f CommitFunc) Commit(ctx context.Context, plan *ReconcilePlan) error {
	return f(ctx, plan)
}
