package database

import (
	"fmt"
	"time"
)

// DefaultVectorCapacity is the number of rows a batch holds unless the
// engine is configured otherwise.
const DefaultVectorCapacity = 2048

// Vector is one column of a batch. Only the slice matching Kind is allocated.
type Vector struct {
	Kind ScalarKind

	Bools    []bool
	Int32s   []int32
	Int64s   []int64
	Float32s []float32
	Float64s []float64
	Strings  []string
	Times    []time.Time

	// true = NULL
	nulls []bool
}

// NewVector allocates a vector of the given kind with room for capacity rows.
func NewVector(kind ScalarKind, capacity int) *Vector {
	v := &Vector{Kind: kind, nulls: make([]bool, capacity)}
	switch kind {
	case KindBool:
		v.Bools = make([]bool, capacity)
	case KindInt32:
		v.Int32s = make([]int32, capacity)
	case KindInt64:
		v.Int64s = make([]int64, capacity)
	case KindFloat32:
		v.Float32s = make([]float32, capacity)
	case KindFloat64:
		v.Float64s = make([]float64, capacity)
	case KindText:
		v.Strings = make([]string, capacity)
	case KindDate, KindTimestamp:
		v.Times = make([]time.Time, capacity)
	}
	return v
}

// SetNull marks (or clears) the NULL flag of row i.
func (v *Vector) SetNull(i int, null bool) {
	v.nulls[i] = null
}

// IsNull reports whether row i holds NULL.
func (v *Vector) IsNull(i int) bool {
	return v.nulls[i]
}

// Value returns row i boxed, or nil for NULL.
func (v *Vector) Value(i int) interface{} {
	if v.nulls[i] {
		return nil
	}
	switch v.Kind {
	case KindBool:
		return v.Bools[i]
	case KindInt32:
		return v.Int32s[i]
	case KindInt64:
		return v.Int64s[i]
	case KindFloat32:
		return v.Float32s[i]
	case KindFloat64:
		return v.Float64s[i]
	case KindText:
		return v.Strings[i]
	case KindDate, KindTimestamp:
		return v.Times[i]
	}
	return nil
}

// Batch is a columnar buffer handed to a table function on every scan call.
// The function fills rows [0, n) of each vector and records n with SetSize.
type Batch struct {
	Vectors  []*Vector
	size     int
	capacity int
}

// NewBatch creates a batch with one vector per kind.
func NewBatch(kinds []ScalarKind, capacity int) *Batch {
	if capacity <= 0 {
		capacity = DefaultVectorCapacity
	}
	b := &Batch{
		Vectors:  make([]*Vector, len(kinds)),
		capacity: capacity,
	}
	for i, k := range kinds {
		b.Vectors[i] = NewVector(k, capacity)
	}
	return b
}

// Vector returns the vector of column col.
func (b *Batch) Vector(col int) *Vector {
	return b.Vectors[col]
}

// ColumnCount returns the number of vectors in the batch.
func (b *Batch) ColumnCount() int {
	return len(b.Vectors)
}

// Capacity is the maximum number of rows the batch can hold.
func (b *Batch) Capacity() int {
	return b.capacity
}

// Size is the number of rows produced by the last fill.
func (b *Batch) Size() int {
	return b.size
}

// SetSize records how many rows are valid. It panics when n exceeds the capacity.
func (b *Batch) SetSize(n int) {
	if n < 0 || n > b.capacity {
		panic(fmt.Sprintf("batch size %d out of range [0, %d]", n, b.capacity))
	}
	b.size = n
}

// Reset empties the batch without releasing its vectors.
func (b *Batch) Reset() {
	b.size = 0
}

// Values returns row i as a slice of boxed values in column order.
func (b *Batch) Values(i int) []interface{} {
	out := make([]interface{}, len(b.Vectors))
	for c, v := range b.Vectors {
		out[c] = v.Value(i)
	}
	return out
}
