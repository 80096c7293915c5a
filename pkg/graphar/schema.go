package graphar

import (
	"errors"
	"fmt"

	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/graph"
)

// nativeKinds maps every GraphAr type the scan can produce. Anything absent,
// such as time or list<...>, is rejected at bind time.
var nativeKinds = map[graph.Type]database.ScalarKind{
	graph.TypeBool:      database.KindBool,
	graph.TypeInt32:     database.KindInt32,
	graph.TypeInt64:     database.KindInt64,
	graph.TypeFloat:     database.KindFloat32,
	graph.TypeDouble:    database.KindFloat64,
	graph.TypeString:    database.KindText,
	graph.TypeDate:      database.KindDate,
	graph.TypeTimestamp: database.KindTimestamp,
}

// KindOf returns the scalar kind of a native type.
func KindOf(t graph.Type) (database.ScalarKind, bool) {
	k, ok := nativeKinds[t]
	return k, ok
}

// ResolveSchema flattens the property groups of a vertex type, in declaration
// order, into output columns.
func ResolveSchema(meta graph.Metadata, table string) ([]database.SchemaEntry, error) {
	v, err := meta.VertexInfo(table)
	if err != nil {
		if errors.Is(err, graph.ErrUnknownVertex) {
			return nil, fmt.Errorf("%w: %v", ErrUnknownTable, err)
		}
		return nil, err
	}

	var schema []database.SchemaEntry
	for _, g := range v.PropertyGroups {
		for _, p := range g.Properties {
			if p.Type.IsList() {
				return nil, fmt.Errorf("%w '%s' of property '%s': list properties cannot be scanned",
					ErrUnsupportedType, p.Type, p.Name)
			}
			kind, ok := KindOf(p.Type)
			if !ok {
				return nil, fmt.Errorf("%w '%s' of property '%s'", ErrUnsupportedType, p.Type, p.Name)
			}
			schema = append(schema, database.SchemaEntry{Name: p.Name, Kind: kind})
		}
	}
	return schema, nil
}
