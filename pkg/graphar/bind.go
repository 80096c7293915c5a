package graphar

import (
	"context"
	"fmt"
	"strings"

	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/graph"
)

// BindData is the frozen result of binding one GRAPHAR_SCAN call.
type BindData struct {
	Table string
	Path  string
	// Schema is the full vertex schema, before projection.
	Schema []database.SchemaEntry

	names      []string
	kinds      []database.ScalarKind
	properties []string
	index      *ColumnIndex
	setters    []Setter

	meta  graph.Metadata
	store graph.Store

	MaxWorkers     int
	VectorCapacity int
	// BatchSize overrides the derived batch size when positive.
	BatchSize int
}

func (b *BindData) ColumnNames() []string {
	return b.names
}

func (b *BindData) ColumnKinds() []database.ScalarKind {
	return b.kinds
}

// Properties returns the source property read by each output column.
func (b *BindData) Properties() []string {
	return b.properties
}

func (b *BindData) ColumnIndex() *ColumnIndex {
	return b.index
}

func (b *BindData) Setters() []Setter {
	return b.setters
}

func (b *BindData) Metadata() graph.Metadata {
	return b.meta
}

// Copy shares the schema, setters and metadata with b and clones the column lists.
func (b *BindData) Copy() database.BindData {
	c := *b
	c.names = append([]string(nil), b.names...)
	c.kinds = append([]database.ScalarKind(nil), b.kinds...)
	c.properties = append([]string(nil), b.properties...)
	return &c
}

func (f *scanFunction) bind(ctx context.Context, in *database.BindInput) (database.BindData, error) {
	var path string
	if len(in.Args) > 0 {
		path, _ = in.Args[0].(string)
	}
	if path == "" {
		return nil, &BindError{Detail: "first argument must be the graph info path", Err: database.ErrArgumentMismatch}
	}
	table, ok := in.StringOption(OptionTableName)
	if !ok || table == "" {
		return nil, &BindError{Detail: fmt.Sprintf("option %q", OptionTableName), Err: database.ErrMissingOption}
	}

	meta, err := f.store.LoadMetadata(path)
	if err != nil {
		return nil, &BindError{Table: table, Detail: "graph info could not be loaded from " + path, Err: err}
	}
	schema, err := ResolveSchema(meta, table)
	if err != nil {
		return nil, &BindError{Table: table, Err: err}
	}

	columns, err := project(schema, in.Yield)
	if err != nil {
		return nil, &BindError{Table: table, Err: err}
	}
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	index := NewColumnIndex(names)
	setters, err := compileSetters(columns, index, f.factories)
	if err != nil {
		return nil, &BindError{Table: table, Err: err}
	}

	bd := &BindData{
		Table:          table,
		Path:           path,
		Schema:         schema,
		names:          names,
		kinds:          make([]database.ScalarKind, len(columns)),
		properties:     make([]string, len(columns)),
		index:          index,
		setters:        setters,
		meta:           meta,
		store:          f.store,
		MaxWorkers:     in.MaxWorkers,
		VectorCapacity: in.VectorCapacity,
	}
	for i, col := range columns {
		bd.kinds[i] = col.Kind
		bd.properties[i] = col.Property
	}
	if bd.MaxWorkers < 1 {
		bd.MaxWorkers = 1
	}
	if bd.VectorCapacity < 1 {
		bd.VectorCapacity = database.DefaultVectorCapacity
	}
	if n, ok := in.IntOption(OptionBatchSize); ok {
		if n < 1 || n > bd.VectorCapacity {
			return nil, &BindError{
				Table:  table,
				Detail: fmt.Sprintf("%s must be in [1, %d], got %d", OptionBatchSize, bd.VectorCapacity, n),
				Err:    ErrInvalidOption,
			}
		}
		bd.BatchSize = n
	}

	f.logger.DebugContext(ctx, "graphar bind",
		"path", path,
		"table", table,
		"columns", strings.Join(names, ","),
		"workers", bd.MaxWorkers,
	)
	return bd, nil
}

// project applies YIELD items to the schema. Without items every column is
// returned under its own name.
func project(schema []database.SchemaEntry, yield []database.YieldColumn) ([]outputColumn, error) {
	if len(yield) == 0 {
		out := make([]outputColumn, len(schema))
		for i, e := range schema {
			out[i] = outputColumn{Name: e.Name, Property: e.Name, Kind: e.Kind}
		}
		return out, nil
	}

	schemaNames := make([]string, len(schema))
	for i, e := range schema {
		schemaNames[i] = e.Name
	}
	source := NewColumnIndex(schemaNames)
	seen := make(map[string]bool, len(yield))
	out := make([]outputColumn, 0, len(yield))
	for _, y := range yield {
		i := source.IndexOf(y.Name)
		if i == ColumnNotFound {
			return nil, fmt.Errorf("%w '%s'", ErrUnknownColumn, y.Name)
		}
		name := y.OutputName()
		if seen[name] {
			return nil, fmt.Errorf("%w '%s'", ErrDuplicateColumn, name)
		}
		seen[name] = true
		out = append(out, outputColumn{Name: name, Property: schema[i].Name, Kind: schema[i].Kind})
	}
	return out, nil
}
