package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	key   string
	name  string
	value int
}

// mockAdapter compares record values.
type mockAdapter struct{}

func (m *mockAdapter) Name() string {
	return "mock"
}

func (m *mockAdapter) ExtractKey(e Entity) string {
	return e.(record).key
}

func (m *mockAdapter) ResolveName(current, incoming Entity) string {
	if incoming != nil {
		return incoming.(record).name
	}
	if current != nil {
		return current.(record).name
	}
	return ""
}

func (m *mockAdapter) CompareFields(current, incoming Entity) []string {
	c, i := current.(record), incoming.(record)
	var out []string
	if c.name != i.name {
		out = append(out, fmt.Sprintf("name: old='%s' new='%s'", c.name, i.name))
	}
	if c.value != i.value {
		out = append(out, fmt.Sprintf("value: old=%d new=%d", c.value, i.value))
	}
	return out
}

func (m *mockAdapter) GetMetadata(current, incoming Entity) map[string]string {
	return nil
}

func loaderOf(records ...record) Loader {
	return func(ctx context.Context) ([]Entity, error) {
		out := make([]Entity, len(records))
		for i, r := range records {
			out[i] = r
		}
		return out, nil
	}
}

func failingLoader(err error) Loader {
	return func(ctx context.Context) ([]Entity, error) {
		return nil, err
	}
}

func TestBuildIndices_ErrorHandling(t *testing.T) {
	tests := []struct {
		name      string
		current   Loader
		incoming  Loader
		expectErr string
	}{
		{"Current load error", failingLoader(errors.New("disk gone")), loaderOf(), "current snapshot: disk gone"},
		{"Incoming load error", loaderOf(), failingLoader(errors.New("bad csv")), "incoming snapshot: bad csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &Spec{Adapter: &mockAdapter{}, Current: tt.current, Incoming: tt.incoming}
			_, err := BuildIndices(context.Background(), spec)
			assert.ErrorContains(t, err, tt.expectErr)
		})
	}
}

func TestReconcileAll(t *testing.T) {
	spec := &Spec{
		Adapter:  &mockAdapter{},
		Current:  loaderOf(record{"1", "Pumpkin", 1}, record{"2", "Wheat", 1}, record{"10", "Rice", 1}),
		Incoming: loaderOf(record{"1", "Pumpkin", 1}, record{"2", "Wheat", 2}, record{"3", "Flour", 1}),
	}

	results, err := ReconcileAll(context.Background(), spec)
	require.NoError(t, err)
	require.Len(t, results, 4)

	// numeric keys sort numerically
	assert.Equal(t, []string{"1", "2", "3", "10"}, []string{results[0].ID, results[1].ID, results[2].ID, results[3].ID})

	assert.True(t, results[0].CurrentPresent)
	assert.True(t, results[0].IncomingPresent)
	assert.Empty(t, results[0].Mismatch)

	assert.Equal(t, []string{"value: old=1 new=2"}, results[1].Mismatch)

	assert.False(t, results[2].CurrentPresent)
	assert.True(t, results[2].IncomingPresent)
	assert.Equal(t, "Flour", results[2].Name)

	assert.True(t, results[3].CurrentPresent)
	assert.False(t, results[3].IncomingPresent)
	assert.Equal(t, "Rice", results[3].Name)
}

func TestIndexLastWins(t *testing.T) {
	idx := Index(&mockAdapter{}, []Entity{record{"1", "a", 1}, record{"1", "b", 2}})
	require.Len(t, idx, 1)
	assert.Equal(t, "b", idx["1"].(record).name)
}

func TestSortResultsMixedKeys(t *testing.T) {
	results := []ReconcileResult{{ID: "b"}, {ID: "100"}, {ID: "9"}, {ID: "a"}}
	sortResults(results)
	assert.Equal(t, "9", results[0].ID)
	assert.Equal(t, "100", results[1].ID)
	assert.Equal(t, "a", results[2].ID)
	assert.Equal(t, "b", results[3].ID)
}
