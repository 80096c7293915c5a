package graphar

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/graph"
)

// ScanState is shared by every scan call of one execution. The cursor is the
// only field written after construction.
type ScanState struct {
	ID    uuid.UUID
	Table string

	collection graph.Collection
	rows       int64
	batchSize  int64
	cursor     atomic.Int64
	observer   Observer
}

// BatchSize derives the rows claimed per call: ceil(rows/workers), at least 1
// and at most capacity. A positive override replaces the derived value and is
// clamped the same way.
func BatchSize(rows int64, workers, capacity, override int) int64 {
	if workers < 1 {
		workers = 1
	}
	if capacity < 1 {
		capacity = database.DefaultVectorCapacity
	}
	b := (rows + int64(workers) - 1) / int64(workers)
	if override > 0 {
		b = int64(override)
	}
	if b < 1 {
		b = 1
	}
	if b > int64(capacity) {
		b = int64(capacity)
	}
	return b
}

// NewScanState builds a state over an opened collection.
func NewScanState(table string, collection graph.Collection, batchSize int64, observer Observer) *ScanState {
	if batchSize < 1 {
		batchSize = 1
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &ScanState{
		ID:         uuid.New(),
		Table:      table,
		collection: collection,
		rows:       collection.Size(),
		batchSize:  batchSize,
		observer:   observer,
	}
}

func (s *ScanState) Rows() int64 {
	return s.rows
}

func (s *ScanState) BatchSize() int64 {
	return s.batchSize
}

// Exhausted reports whether every row has been claimed. Once true it stays true.
func (s *ScanState) Exhausted() bool {
	return s.cursor.Load() >= s.rows
}

// claim reserves the next range [start, end). ok is false once the cursor has
// passed the last row.
func (s *ScanState) claim() (start, end int64, ok bool) {
	start = s.cursor.Add(s.batchSize) - s.batchSize
	if start >= s.rows {
		return 0, 0, false
	}
	return start, min(start+s.batchSize, s.rows), true
}

func (f *scanFunction) initSharedState(ctx context.Context, bind database.BindData) (database.SharedState, error) {
	bd, ok := bind.(*BindData)
	if !ok {
		return nil, fmt.Errorf("graphar: unexpected bind data %T", bind)
	}
	collection, err := bd.store.OpenCollection(bd.meta, bd.Table)
	if err != nil {
		return nil, fmt.Errorf("graphar: open '%s': %w", bd.Table, err)
	}
	rows := collection.Size()
	state := NewScanState(bd.Table, collection,
		BatchSize(rows, bd.MaxWorkers, bd.VectorCapacity, bd.BatchSize), f.observer)

	f.observer.ExecutionStarted(bd.Table, rows)
	f.logger.InfoContext(ctx, "graphar scan started",
		"execution", state.ID.String(),
		"table", bd.Table,
		"rows", rows,
		"batch_size", state.batchSize,
		"workers", bd.MaxWorkers,
	)
	return state, nil
}
