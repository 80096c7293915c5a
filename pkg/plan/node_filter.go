package plan

import (
	"context"

	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/query"
)

// FilterNode filters rows based on an expression
type FilterNode struct {
	Input      Node
	Expression query.Expression
	Text       string
}

func (n *FilterNode) Execute(ctx context.Context) (database.RowIterator, error) {
	inputIter, err := n.Input.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return &filterIterator{source: inputIter, expression: n.Expression}, nil
}

func (n *FilterNode) Children() []Node {
	return []Node{n.Input}
}

func (n *FilterNode) Columns() []string {
	return n.Input.Columns()
}

func (n *FilterNode) Explain() string {
	return "Filter(expression: " + n.Text + ")"
}
