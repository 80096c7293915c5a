package graphar

import (
	"fmt"
	"time"

	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/graph"
)

// Setter reads one property of row and writes it to row offset of one output
// vector. Setters hold no state and may run concurrently on distinct slots.
type Setter func(row graph.Vertex, out *database.Batch, offset int) error

type setterFactory func(field int, property string) Setter

// typedSetter builds the factory for one kind: get reads the property from the
// vertex, slot selects the vector's backing slice.
func typedSetter[T any](get func(graph.Vertex, string) (T, bool, error), slot func(*database.Vector) []T) setterFactory {
	return func(field int, property string) Setter {
		return func(row graph.Vertex, out *database.Batch, offset int) error {
			v, ok, err := get(row, property)
			if err != nil {
				return err
			}
			vec := out.Vectors[field]
			if !ok {
				vec.SetNull(offset, true)
				return nil
			}
			slot(vec)[offset] = v
			vec.SetNull(offset, false)
			return nil
		}
	}
}

var setterFactories = map[database.ScalarKind]setterFactory{
	database.KindBool:      typedSetter(graph.Vertex.Bool, func(v *database.Vector) []bool { return v.Bools }),
	database.KindInt32:     typedSetter(graph.Vertex.Int32, func(v *database.Vector) []int32 { return v.Int32s }),
	database.KindInt64:     typedSetter(graph.Vertex.Int64, func(v *database.Vector) []int64 { return v.Int64s }),
	database.KindFloat32:   typedSetter(graph.Vertex.Float32, func(v *database.Vector) []float32 { return v.Float32s }),
	database.KindFloat64:   typedSetter(graph.Vertex.Float64, func(v *database.Vector) []float64 { return v.Float64s }),
	database.KindText:      typedSetter(graph.Vertex.String, func(v *database.Vector) []string { return v.Strings }),
	database.KindDate:      typedSetter(graph.Vertex.Date, times),
	database.KindTimestamp: typedSetter(graph.Vertex.Timestamp, times),
}

func times(v *database.Vector) []time.Time {
	return v.Times
}

// outputColumn is a projected column: its result name, the property it reads
// and its kind.
type outputColumn struct {
	Name     string
	Property string
	Kind     database.ScalarKind
}

// compileSetters instantiates one setter per column, in column order.
func compileSetters(columns []outputColumn, index *ColumnIndex, factories map[database.ScalarKind]setterFactory) ([]Setter, error) {
	setters := make([]Setter, 0, len(columns))
	for _, col := range columns {
		field := index.IndexOf(col.Name)
		if field == ColumnNotFound || field >= len(columns) {
			return nil, fmt.Errorf("%w '%s'", ErrUnknownColumn, col.Name)
		}
		factory, ok := factories[col.Kind]
		if !ok {
			return nil, fmt.Errorf("%w %s of column '%s'", ErrUnsupportedColumnType, col.Kind, col.Name)
		}
		setters = append(setters, factory(field, col.Property))
	}
	return setters, nil
}
