package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/plan"
	"github.com/bisegni/grapharscan/pkg/planner"
	"github.com/bisegni/grapharscan/pkg/query"
)

const (
	FormatJSONL = "jsonl"
	FormatTable = "table"
)

// Executor runs a plan and writes its rows
type Executor struct {
	Format string
	Pretty bool
}

func NewExecutor() *Executor {
	return &Executor{
		Format: FormatJSONL,
		Pretty: false,
	}
}

// Run parses, plans and executes one statement. EXPLAIN statements print the
// plan tree instead of rows.
func (e *Executor) Run(ctx context.Context, text string, catalog *database.Catalog, s planner.Settings, w io.Writer) error {
	st, err := query.ParseStatement(text)
	if err != nil {
		return err
	}
	node, err := planner.CreatePlan(ctx, st, catalog, s)
	if err != nil {
		return err
	}
	if st.Explain {
		return plan.WritePlan(w, node)
	}
	return e.Execute(ctx, node, w)
}

// Execute streams the rows of node to w.
func (e *Executor) Execute(ctx context.Context, node plan.Node, w io.Writer) error {
	iterator, err := node.Execute(ctx)
	if err != nil {
		return err
	}
	defer iterator.Close()

	switch e.Format {
	case "", FormatJSONL:
		err = e.writeJSONL(iterator, w)
	case FormatTable:
		err = e.writeTable(node.Columns(), iterator, w)
	default:
		err = fmt.Errorf("unknown output format %q", e.Format)
	}
	if err != nil {
		return err
	}
	return iterator.Error()
}

func (e *Executor) writeJSONL(iterator database.RowIterator, w io.Writer) error {
	// Stream results as JSONL
	encoder := json.NewEncoder(w)
	if e.Pretty {
		encoder.SetIndent("", "  ")
	}
	for iterator.Next() {
		if err := encoder.Encode(iterator.Row().Primitive()); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) writeTable(columns []string, iterator database.RowIterator, w io.Writer) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if e.Pretty {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(table.StyleLight)
	}
	t.Style().Options.SeparateRows = false

	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	t.AppendHeader(header)

	rows := 0
	for iterator.Next() {
		r := iterator.Row()
		out := make(table.Row, len(columns))
		for i, c := range columns {
			v, err := r.Get(c)
			if err != nil {
				return err
			}
			out[i] = displayValue(v)
		}
		t.AppendRow(out)
		rows++
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d rows", rows)})
	t.Render()
	return nil
}

func displayValue(v interface{}) interface{} {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339Nano)
	}
	return v
}
