package plan

import (
	"context"
	"errors"
	"io"

	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/query"
	"github.com/bisegni/grapharscan/pkg/worker"
)

// --- Stream Iterator ---

// streamIterator flattens the batches of a worker stream into rows.
type streamIterator struct {
	ctx    context.Context
	stream *worker.Stream
	names  []string
	batch  *database.Batch
	pos    int
	err    error
	done   bool
}

func (it *streamIterator) Next() bool {
	if it.done {
		return false
	}
	if it.batch != nil && it.pos+1 < it.batch.Size() {
		it.pos++
		return true
	}
	b, err := it.stream.Next(it.ctx)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			it.err = err
		}
		it.done = true
		return false
	}
	it.batch = b
	it.pos = 0
	return true
}

func (it *streamIterator) Row() database.Row {
	return database.BatchRow(it.names, it.batch, it.pos)
}

func (it *streamIterator) Error() error {
	return it.err
}

func (it *streamIterator) Close() error {
	it.done = true
	if err := it.stream.Close(); err != nil && err != it.err {
		return err
	}
	return nil
}

// --- Filter Iterator ---

type filterIterator struct {
	source     database.RowIterator
	expression query.Expression
}

func (it *filterIterator) Next() bool {
	for it.source.Next() {
		if it.expression.Evaluate(it.source.Row()) {
			return true
		}
	}
	return false
}

func (it *filterIterator) Row() database.Row {
	return it.source.Row()
}

func (it *filterIterator) Error() error {
	return it.source.Error()
}

func (it *filterIterator) Close() error {
	return it.source.Close()
}

// --- Project Iterator ---

type projectIterator struct {
	source database.RowIterator
	fields []string
	row    database.Row
	err    error
}

func (it *projectIterator) Next() bool {
	if it.err != nil || !it.source.Next() {
		return false
	}
	src := it.source.Row()
	om := make(database.OrderedMap, len(it.fields))
	for i, f := range it.fields {
		v, err := src.Get(f)
		if err != nil {
			it.err = err
			return false
		}
		om[i] = database.KeyVal{Key: f, Val: v}
	}
	it.row = database.NewRow(om)
	return true
}

func (it *projectIterator) Row() database.Row {
	return it.row
}

func (it *projectIterator) Error() error {
	if it.err != nil {
		return it.err
	}
	return it.source.Error()
}

func (it *projectIterator) Close() error {
	return it.source.Close()
}

// --- Limit Iterator ---

type limitIterator struct {
	source    database.RowIterator
	remaining int64
}

func (it *limitIterator) Next() bool {
	if it.remaining <= 0 {
		return false
	}
	if !it.source.Next() {
		return false
	}
	it.remaining--
	return true
}

func (it *limitIterator) Row() database.Row {
	return it.source.Row()
}

func (it *limitIterator) Error() error {
	return it.source.Error()
}

func (it *limitIterator) Close() error {
	return it.source.Close()
}
