package plan

import (
	"context"
	"fmt"

	"github.com/bisegni/grapharscan/pkg/database"
)

// LimitNode stops after Limit rows and closes its input early.
type LimitNode struct {
	Input Node
	Limit int64
}

func (n *LimitNode) Execute(ctx context.Context) (database.RowIterator, error) {
	inputIter, err := n.Input.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return &limitIterator{source: inputIter, remaining: n.Limit}, nil
}

func (n *LimitNode) Children() []Node {
	return []Node{n.Input}
}

func (n *LimitNode) Columns() []string {
	return n.Input.Columns()
}

func (n *LimitNode) Explain() string {
	return fmt.Sprintf("Limit(%d)", n.Limit)
}
