package query

import (
	"github.com/bisegni/grapharscan/pkg/database"
)

// Expression is a boolean expression that can be evaluated against a row
type Expression interface {
	Evaluate(row database.Row) bool
	// Columns lists the columns the expression reads.
	Columns() []string
}

// Condition is a simple filter (leaf node)
type Condition struct {
	Filter *Filter
}

func (c *Condition) Evaluate(row database.Row) bool {
	return c.Filter.Match(row)
}

func (c *Condition) Columns() []string {
	return []string{c.Filter.Field}
}

// AndExpression represents Logical AND
type AndExpression struct {
	Left  Expression
	Right Expression
}

func (a *AndExpression) Evaluate(row database.Row) bool {
	return a.Left.Evaluate(row) && a.Right.Evaluate(row)
}

func (a *AndExpression) Columns() []string {
	return append(a.Left.Columns(), a.Right.Columns()...)
}

// OrExpression represents Logical OR
type OrExpression struct {
	Left  Expression
	Right Expression
}

func (o *OrExpression) Evaluate(row database.Row) bool {
	return o.Left.Evaluate(row) || o.Right.Evaluate(row)
}

func (o *OrExpression) Columns() []string {
	return append(o.Left.Columns(), o.Right.Columns()...)
}
