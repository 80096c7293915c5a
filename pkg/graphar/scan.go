package graphar

import (
	"fmt"

	"github.com/bisegni/grapharscan/pkg/database"
)

// Scan claims the next range of rows and materializes it into out. It returns
// 0 once the state is exhausted. On a storage error the batch is discarded and
// a *ScanError is returned.
func Scan(state database.SharedState, bind database.BindData, out *database.Batch) (int, error) {
	s, ok := state.(*ScanState)
	if !ok {
		return 0, fmt.Errorf("graphar: unexpected scan state %T", state)
	}
	bd, ok := bind.(*BindData)
	if !ok {
		return 0, fmt.Errorf("graphar: unexpected bind data %T", bind)
	}
	if int64(out.Capacity()) < s.batchSize {
		return 0, fmt.Errorf("%w: capacity %d, batch size %d", ErrBatchTooSmall, out.Capacity(), s.batchSize)
	}
	if out.ColumnCount() != len(bd.setters) {
		return 0, fmt.Errorf("graphar: batch has %d columns, scan produces %d", out.ColumnCount(), len(bd.setters))
	}

	start, end, ok := s.claim()
	if !ok {
		out.SetSize(0)
		return 0, nil
	}

	setters := bd.setters
	for idx := start; idx < end; idx++ {
		row := s.collection.At(idx)
		offset := int(idx - start)
		for c, set := range setters {
			if err := set(row, out, offset); err != nil {
				out.SetSize(0)
				s.observer.ScanFailed(bd.Table)
				return 0, &ScanError{Execution: s.ID, Table: bd.Table, Row: idx, Column: bd.names[c], Err: err}
			}
		}
	}

	n := int(end - start)
	out.SetSize(n)
	s.observer.BatchClaimed(bd.Table, n)
	return n, nil
}
