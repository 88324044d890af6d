package reconcile

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Indices holds both snapshots keyed by entity key.
type Indices struct {
	Current  map[string]Entity
	Incoming map[string]Entity
}

// BuildIndices loads both snapshots concurrently and indexes them.
func BuildIndices(ctx context.Context, spec *Spec) (*Indices, error) {
	var (
		current, incoming []Entity
		curErr, incErr    error
		wg                sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, curErr = spec.Current(ctx)
	}()
	go func() {
		defer wg.Done()
		incoming, incErr = spec.Incoming(ctx)
	}()
	wg.Wait()

	if curErr != nil {
		return nil, fmt.Errorf("failed to load current snapshot: %w", curErr)
	}
	if incErr != nil {
		return nil, fmt.Errorf("failed to load incoming snapshot: %w", incErr)
	}

	return &Indices{
		Current:  Index(spec.Adapter, current),
		Incoming: Index(spec.Adapter, incoming),
	}, nil
}

// Index keys entities by the adapter's key. Later entities win on collision.
func Index(adapter Adapter, entities []Entity) map[string]Entity {
	idx := make(map[string]Entity, len(entities))
	for _, e := range entities {
		idx[adapter.ExtractKey(e)] = e
	}
	return idx
}

// ReconcileAll compares both snapshots and returns one result per key,
// sorted by key.
func ReconcileAll(ctx context.Context, spec *Spec) ([]ReconcileResult, error) {
	indices, err := BuildIndices(ctx, spec)
	if err != nil {
		return nil, err
	}
	return Diff(spec.Adapter, indices), nil
}

// Diff builds the results for the union of keys of both indices.
func Diff(adapter Adapter, indices *Indices) []ReconcileResult {
	union := buildUnion(indices.Current, indices.Incoming)

	results := make([]ReconcileResult, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, indices, adapter))
	}

	sortResults(results)
	return results
}

// buildUnion creates a union of the keys of both snapshots.
func buildUnion(current, incoming map[string]Entity) map[string]struct{} {
	union := make(map[string]struct{}, len(current)+len(incoming))
	for key := range current {
		union[key] = struct{}{}
	}
	for key := range incoming {
		union[key] = struct{}{}
	}
	return union
}

// buildResult creates a ReconcileResult for a single key.
func buildResult(key string, indices *Indices, adapter Adapter) ReconcileResult {
	cur, curPresent := indices.Current[key]
	inc, incPresent := indices.Incoming[key]

	result := ReconcileResult{
		ID:              key,
		CurrentPresent:  curPresent,
		IncomingPresent: incPresent,
		Mismatch:        []string{},
	}

	result.Name = adapter.ResolveName(cur, inc)
	result.Metadata = adapter.GetMetadata(cur, inc)

	if curPresent && incPresent {
		result.Mismatch = adapter.CompareFields(cur, inc)
	}

	return result
}

// sortResults orders results by key, numerically when both keys are numbers.
func sortResults(results []ReconcileResult) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].ID, results[j].ID
		if len(a) != len(b) && isDigits(a) && isDigits(b) {
			return len(a) < len(b)
		}
		return a < b
	})
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
