package worker

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/graph"
	"github.com/bisegni/grapharscan/pkg/graphar"
)

const path = "mem://numbers"

func numbersStore(t *testing.T, n int) *graph.MemoryStore {
	t.Helper()
	v := &graph.VertexInfo{
		Type:      "number",
		ChunkSize: 64,
		PropertyGroups: []*graph.PropertyGroup{
			{Properties: []graph.Property{{Name: "n", Type: graph.TypeInt64}}},
		},
	}
	info, err := graph.NewGraphInfo("numbers", "", v)
	require.NoError(t, err)
	rows := make([]map[string]interface{}, n)
	for i := range rows {
		rows[i] = map[string]interface{}{"n": int64(i)}
	}
	store := graph.NewMemoryStore()
	store.AddGraph(path, info)
	require.NoError(t, store.SetRows(path, "number", rows))
	return store
}

func setup(t *testing.T, store graph.Store, workers, capacity int, opts map[string]interface{}) (*database.TableFunction, database.BindData, database.SharedState) {
	t.Helper()
	fn := graphar.NewScanFunction(store)
	in := &database.BindInput{
		Args:           []interface{}{path},
		Options:        map[string]interface{}{graphar.OptionTableName: "number"},
		MaxWorkers:     workers,
		VectorCapacity: capacity,
	}
	for k, v := range opts {
		in.Options[k] = v
	}
	bind, err := fn.Bind(context.Background(), in)
	require.NoError(t, err)
	state, err := fn.InitSharedState(context.Background(), bind)
	require.NoError(t, err)
	return fn, bind, state
}

func drain(t *testing.T, s *Stream) ([]int64, error) {
	t.Helper()
	var got []int64
	for {
		b, err := s.Next(context.Background())
		if err == io.EOF {
			return got, nil
		}
		if err != nil {
			return got, err
		}
		for i := 0; i < b.Size(); i++ {
			got = append(got, b.Vector(0).Int64s[i])
		}
	}
}

func TestStreamProducesEveryRowOnce(t *testing.T) {
	for _, tc := range []struct{ rows, workers, capacity int }{
		{0, 4, 16},
		{1, 4, 16},
		{1000, 1, 2048},
		{1000, 8, 16},
		{4097, 3, 128},
	} {
		fn, bind, state := setup(t, numbersStore(t, tc.rows), tc.workers, tc.capacity, nil)
		s, err := Start(context.Background(), fn, bind, state, Options{Workers: tc.workers, Capacity: tc.capacity})
		require.NoError(t, err)

		got, err := drain(t, s)
		require.NoError(t, err)
		require.Len(t, got, tc.rows, "%+v", tc)
		sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
		for i, v := range got {
			require.EqualValues(t, i, v)
		}
		assert.EqualValues(t, tc.rows, s.Rows())
		assert.True(t, state.Exhausted())
		assert.NoError(t, s.Close())
	}
}

func TestStreamReportsScanError(t *testing.T) {
	store := numbersStore(t, 0)
	rows := make([]map[string]interface{}, 100)
	for i := range rows {
		rows[i] = map[string]interface{}{"n": int64(i)}
	}
	rows[42] = map[string]interface{}{"n": "forty-two"}
	require.NoError(t, store.SetRows(path, "number", rows))
	fn, bind, state := setup(t, store, 2, 16, map[string]interface{}{graphar.OptionBatchSize: 10})

	s, err := Start(context.Background(), fn, bind, state, Options{Workers: 2, Capacity: 16})
	require.NoError(t, err)
	_, err = drain(t, s)
	assert.ErrorIs(t, err, graph.ErrTypeMismatch)

	var se *graphar.ScanError
	require.True(t, errors.As(err, &se))
	assert.EqualValues(t, 42, se.Row)
	assert.Error(t, s.Close())
}

func TestStreamCancel(t *testing.T) {
	fn, bind, state := setup(t, numbersStore(t, 10000), 2, 16, nil)
	ctx, cancel := context.WithCancel(context.Background())
	s, err := Start(ctx, fn, bind, state, Options{Workers: 2, Capacity: 16})
	require.NoError(t, err)

	_, err = s.Next(ctx)
	require.NoError(t, err)
	cancel()

	_, err = drain(t, s)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStreamCloseEarly(t *testing.T) {
	fn, bind, state := setup(t, numbersStore(t, 10000), 4, 16, nil)
	s, err := Start(context.Background(), fn, bind, state, Options{Workers: 4, Capacity: 16})
	require.NoError(t, err)

	_, err = s.Next(context.Background())
	require.NoError(t, err)
	assert.NoError(t, s.Close())
	assert.False(t, state.Exhausted())
}
