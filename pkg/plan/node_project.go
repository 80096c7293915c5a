package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/bisegni/grapharscan/pkg/database"
)

// ProjectNode narrows its input to Fields, in that order.
type ProjectNode struct {
	Input  Node
	Fields []string
}

func (n *ProjectNode) Execute(ctx context.Context) (database.RowIterator, error) {
	inputIter, err := n.Input.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return &projectIterator{source: inputIter, fields: n.Fields}, nil
}

func (n *ProjectNode) Children() []Node {
	return []Node{n.Input}
}

func (n *ProjectNode) Columns() []string {
	return n.Fields
}

func (n *ProjectNode) Explain() string {
	return fmt.Sprintf("Project(%s)", strings.Join(n.Fields, ", "))
}
