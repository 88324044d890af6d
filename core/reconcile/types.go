package reconcile

import "context"

// Entity is one record of a snapshot. Adapters define the concrete type.
type Entity any

// Loader produces the entities of one snapshot.
type Loader func(ctx context.Context) ([]Entity, error)

// ReconcileResult represents the comparison of one key across two snapshots.
type ReconcileResult struct {
	// ID is the unique key of the entity.
	ID string `json:"id"`

	// Name is the display name of the entity.
	Name string `json:"name"`

	// CurrentPresent indicates whether the entity exists in the committed snapshot.
	CurrentPresent bool `json:"current_present"`

	// IncomingPresent indicates whether the entity exists in the candidate snapshot.
	IncomingPresent bool `json:"incoming_present"`

	// Mismatch contains descriptions of field differences, e.g. "name: old='a' new='b'".
	Mismatch []string `json:"mismatch"`

	// Metadata contains model-specific data (e.g., category).
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Spec bundles the adapter and the two snapshot loaders of a comparison.
type Spec struct {
	// Adapter provides model-specific comparison logic.
	Adapter Adapter

	// Current loads the committed snapshot.
	Current Loader

	// Incoming loads the candidate snapshot.
	Incoming Loader
}

// ActionType represents the type of change a plan would make.
type ActionType string

const (
	// ActionAdd introduces an entity absent from the committed snapshot.
	ActionAdd ActionType = "add"
	// ActionUpdate replaces an entity whose fields changed.
	ActionUpdate ActionType = "update"
)

// Action represents a planned change.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the entity identifier.
	Key string `json:"key"`

	// Name is the entity display name.
	Name string `json:"name,omitempty"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Entity is the incoming value the action would commit.
	Entity Entity `json:"-"`
}

// ReconcilePlan contains comparison results and planned actions.
type ReconcilePlan struct {
	// Results contains per-entity comparison data, sorted by key.
	Results []ReconcileResult `json:"results"`

	// Actions contains planned changes.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// TotalItems is the number of distinct keys across both snapshots.
	TotalItems int `json:"total_items"`

	// Added counts keys only present in the incoming snapshot.
	Added int `json:"added"`

	// Removed counts keys only present in the committed snapshot.
	Removed int `json:"removed"`

	// Changed counts keys present in both with field differences.
	Changed int `json:"changed"`

	// Unchanged counts keys present in both without differences.
	Unchanged int `json:"unchanged"`
}

// HasChanges reports whether applying the plan would change anything.
func (s PlanSummary) HasChanges() bool {
	return s.Added > 0 || s.Removed > 0 || s.Changed > 0
}

// ReconcileOptions controls whether a plan is applied.
type ReconcileOptions struct {
	// DryRun prevents execution of any changes if true.
	DryRun bool

	// Confirmed indicates the user accepted the plan.
	// If false, changes will not execute regardless of DryRun.
	Confirmed bool
}
