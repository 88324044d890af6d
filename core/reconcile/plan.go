package reconcile

import (
	"context"
	"fmt"
	"strings"
)

// ReconcileWithPlan compares both snapshots and returns a plan with results
// and actions. It does NOT apply anything; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, spec *Spec) (*ReconcilePlan, error) {
	indices, err := BuildIndices(ctx, spec)
	if err != nil {
		return nil, err
	}
	return PlanFromIndices(spec.Adapter, indices), nil
}

// PlanFromIndices builds a plan from already loaded snapshots.
func PlanFromIndices(adapter Adapter, indices *Indices) *ReconcilePlan {
	results := Diff(adapter, indices)
	summary, actions := buildPlanFromResults(results, indices)

	return &ReconcilePlan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}
}

// ApplyPlan hands an accepted plan to the committer.
// Returns the number of actions applied. Requires opts.Confirmed=true and
// opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, plan *ReconcilePlan, committer Committer, opts ReconcileOptions) (int, error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	if committer == nil {
		return 0, fmt.Errorf("no committer configured")
	}

	if err := committer.Commit(ctx, plan); err != nil {
		return 0, fmt.Errorf("failed to commit plan: %w", err)
	}
	return len(plan.Actions), nil
}

// ReconcileAndApply is a convenience wrapper that plans and optionally applies.
func ReconcileAndApply(ctx context.Context, spec *Spec, committer Committer, opts ReconcileOptions) (*ReconcilePlan, int, error) {
	plan, err := ReconcileWithPlan(ctx, spec)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, plan, committer, opts)
	return plan, executed, err
}

// buildPlanFromResults generates a summary and actions from results.
func buildPlanFromResults(results []ReconcileResult, indices *Indices) (PlanSummary, []Action) {
	var summary PlanSummary
	var actions []Action

	summary.TotalItems = len(results)

	for _, result := range results {
		switch {
		case result.IncomingPresent && !result.CurrentPresent:
			summary.Added++
			actions = append(actions, Action{
				Type:   ActionAdd,
				Key:    result.ID,
				Name:   result.Name,
				Reason: "new entity",
				Entity: indices.Incoming[result.ID],
			})
		case result.CurrentPresent && !result.IncomingPresent:
			// Removal is reported but never planned.
			summary.Removed++
		case len(result.Mismatch) > 0:
			summary.Changed++
			actions = append(actions, Action{
				Type:   ActionUpdate,
				Key:    result.ID,
				Name:   result.Name,
				Reason: "changed: " + strings.Join(result.Mismatch, "; "),
				Entity: indices.Incoming[result.ID],
			})
		default:
			summary.Unchanged++
		}
	}

	return summary, actions
}
