package database

import "fmt"

// ScalarKind is the closed set of column types a scan can produce.
type ScalarKind uint8

const (
	KindBool ScalarKind = iota
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindText
	KindDate
	KindTimestamp
)

var kindNames = [...]string{
	KindBool:      "BOOL",
	KindInt32:     "INT32",
	KindInt64:     "INT64",
	KindFloat32:   "FLOAT",
	KindFloat64:   "DOUBLE",
	KindText:      "STRING",
	KindDate:      "DATE",
	KindTimestamp: "TIMESTAMP",
}

func (k ScalarKind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("KIND(%d)", uint8(k))
}

// Valid reports whether k is one of the enumerated kinds.
func (k ScalarKind) Valid() bool {
	return int(k) < len(kindNames)
}

// SchemaEntry is one output column: its name and scalar kind.
type SchemaEntry struct {
	Name string
	Kind ScalarKind
}

func (e SchemaEntry) String() string {
	return e.Name + " " + e.Kind.String()
}

// Row represents a single record produced by a plan.
type Row interface {
	// Get returns the value of a column by name.
	Get(field string) (interface{}, error)
	// Primitive returns the underlying data structure.
	Primitive() interface{}
}

// RowIterator allows iterating over rows.
type RowIterator interface {
	// Next advances the iterator. Returns false if no more rows or error.
	Next() bool
	// Row returns the current row.
	Row() Row
	// Error returns any error that occurred during iteration.
	Error() error
	// Close releases resources.
	Close() error
}

