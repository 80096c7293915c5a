package plan

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/worker"
)

// TableFunctionNode runs a bound table function with a pool of scan workers.
type TableFunctionNode struct {
	Function *database.TableFunction
	Bind     database.BindData
	Args     []interface{}
	Options  map[string]interface{}

	Workers  int
	Capacity int
	Logger   *slog.Logger
}

func (n *TableFunctionNode) Execute(ctx context.Context) (database.RowIterator, error) {
	bind := n.Bind.Copy()
	state, err := n.Function.InitSharedState(ctx, bind)
	if err != nil {
		return nil, err
	}
	stream, err := worker.Start(ctx, n.Function, bind, state, worker.Options{
		Workers:  n.Workers,
		Capacity: n.Capacity,
		Logger:   n.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &streamIterator{ctx: ctx, stream: stream, names: bind.ColumnNames(), pos: -1}, nil
}

func (n *TableFunctionNode) Children() []Node {
	return nil
}

func (n *TableFunctionNode) Columns() []string {
	return n.Bind.ColumnNames()
}

func (n *TableFunctionNode) Explain() string {
	var cols []string
	kinds := n.Bind.ColumnKinds()
	for i, name := range n.Bind.ColumnNames() {
		cols = append(cols, name+" "+kinds[i].String())
	}
	return fmt.Sprintf("TableFunction(%s, args: %v, options: %v, workers: %d, columns: [%s])",
		n.Function.Name, n.Args, n.Options, n.Workers, strings.Join(cols, ", "))
}
