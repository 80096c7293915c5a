package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/plan"
	"github.com/bisegni/grapharscan/pkg/query"
)

// ErrUnknownColumn is returned when WHERE reads a column the call does not produce.
var ErrUnknownColumn = errors.New("unknown column")

// Settings carries the engine configuration that binding and execution need.
type Settings struct {
	Workers        int
	VectorCapacity int
	Logger         *slog.Logger
}

// CreatePlan binds a CALL statement and converts it into an execution plan
func CreatePlan(ctx context.Context, st *query.CallStatement, catalog *database.Catalog, s Settings) (plan.Node, error) {
	// 1. Resolve and bind the table function
	fn, err := catalog.GetFunction(st.Function)
	if err != nil {
		return nil, err
	}
	// WHERE may read properties that YIELD drops: scan them too and project
	// them away after the filter.
	yield, hidden := widenYield(st.Yield, st.Filter)
	in := &database.BindInput{
		Args:           st.Args,
		Options:        st.Options,
		Yield:          yield,
		MaxWorkers:     s.Workers,
		VectorCapacity: s.VectorCapacity,
	}
	if err := fn.CheckInput(in); err != nil {
		return nil, err
	}
	bind, err := fn.Bind(ctx, in)
	if err != nil {
		return nil, err
	}

	var currentNode plan.Node = &plan.TableFunctionNode{
		Function: fn,
		Bind:     bind,
		Args:     st.Args,
		Options:  st.Options,
		Workers:  s.Workers,
		Capacity: s.VectorCapacity,
		Logger:   s.Logger,
	}

	// 2. Apply WHERE (Filter)
	if st.Filter != nil {
		available := make(map[string]bool)
		for _, c := range currentNode.Columns() {
			available[c] = true
		}
		for _, c := range st.Filter.Columns() {
			if !available[c] {
				return nil, fmt.Errorf("WHERE: %w '%s'", ErrUnknownColumn, c)
			}
		}
		currentNode = &plan.FilterNode{
			Input:      currentNode,
			Expression: st.Filter,
			Text:       st.FilterText,
		}
	}

	if hidden {
		fields := make([]string, len(st.Yield))
		for i, y := range st.Yield {
			fields[i] = y.OutputName()
		}
		currentNode = &plan.ProjectNode{Input: currentNode, Fields: fields}
	}

	// 3. Apply LIMIT
	if st.Limit != query.NoLimit {
		currentNode = &plan.LimitNode{Input: currentNode, Limit: st.Limit}
	}

	return currentNode, nil
}

// widenYield appends to yield every filter column it does not already output.
// hidden reports whether anything was appended.
func widenYield(yield []database.YieldColumn, filter query.Expression) ([]database.YieldColumn, bool) {
	if len(yield) == 0 || filter == nil {
		return yield, false
	}
	outputs := make(map[string]bool, len(yield))
	for _, y := range yield {
		outputs[y.OutputName()] = true
	}
	wide := append([]database.YieldColumn(nil), yield...)
	for _, c := range filter.Columns() {
		if !outputs[c] {
			outputs[c] = true
			wide = append(wide, database.YieldColumn{Name: c})
		}
	}
	return wide, len(wide) > len(yield)
}
