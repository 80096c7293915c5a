package query

import (
	"fmt"
	"strconv"
	"strings"
)

// AST for Participle Parser

type ASTStatement struct {
	Explain bool            `parser:"@'EXPLAIN'?"`
	Call    *ASTCall        `parser:"'CALL' @@"`
	Yield   []*ASTYieldItem `parser:"('YIELD' @@ (',' @@)*)?"`
	Where   *ASTExpression  `parser:"('WHERE' @@)?"`
	Limit   *int64          `parser:"('LIMIT' @Number)?"`
	End     *string         `parser:"@';'?"`
}

type ASTCall struct {
	Function string         `parser:"@Ident"`
	Args     []*ASTArgument `parser:"'(' (@@ (',' @@)*)? ')'"`
}

// ASTArgument is either a positional literal or a named option.
type ASTArgument struct {
	Option  *ASTOption  `parser:"  @@"`
	Literal *ASTLiteral `parser:"| @@"`
}

type ASTOption struct {
	Name  string      `parser:"@Ident (':=' | '=')"`
	Value *ASTLiteral `parser:"@@"`
}

type ASTYieldItem struct {
	Name  string `parser:"@Ident"`
	Alias string `parser:"('AS' @Ident)?"`
}

type ASTExpression struct {
	Or []*ASTOrCondition `parser:"@@ ('OR' @@)*"`
}

type ASTOrCondition struct {
	And []*ASTCondition `parser:"@@ ('AND' @@)*"`
}

type ASTCondition struct {
	Grouped *ASTExpression      `parser:"  '(' @@ ')'"`
	Simple  *ASTSimpleCondition `parser:"| @@"`
}

type ASTSimpleCondition struct {
	Column string      `parser:"@Ident"`
	Op     string      `parser:"@('='|'!='|'>='|'<='|'>'|'<'|'CONTAINS')"`
	Value  *ASTLiteral `parser:"@@"`
}

type ASTLiteral struct {
	Number *float64 `parser:"  @Number"`
	StrVal *string  `parser:"| @String"`
	Bool   *Boolean `parser:"| @('TRUE'|'FALSE')"`
}

// Boolean captures TRUE/FALSE in any case.
type Boolean bool

func (b *Boolean) Capture(values []string) error {
	*b = Boolean(strings.EqualFold(values[0], "TRUE"))
	return nil
}

func (l *ASTLiteral) String() string {
	if l.Number != nil {
		return strconv.FormatFloat(*l.Number, 'f', -1, 64)
	}
	if l.StrVal != nil {
		return "'" + strings.ReplaceAll(*l.StrVal, "'", "''") + "'"
	}
	if l.Bool != nil {
		return strings.ToUpper(strconv.FormatBool(bool(*l.Bool)))
	}
	return ""
}

func (l *ASTLiteral) ToValue() interface{} {
	if l.Number != nil {
		return *l.Number
	}
	if l.StrVal != nil {
		return *l.StrVal
	}
	if l.Bool != nil {
		return bool(*l.Bool)
	}
	return nil
}

func (e *ASTExpression) String() string {
	var parts []string
	for _, or := range e.Or {
		parts = append(parts, or.String())
	}
	return strings.Join(parts, " OR ")
}

func (o *ASTOrCondition) String() string {
	var parts []string
	for _, and := range o.And {
		parts = append(parts, and.String())
	}
	return strings.Join(parts, " AND ")
}

func (c *ASTCondition) String() string {
	if c.Grouped != nil {
		return "(" + c.Grouped.String() + ")"
	}
	if c.Simple != nil {
		return fmt.Sprintf("%s %s %s", c.Simple.Column, strings.ToUpper(c.Simple.Op), c.Simple.Value.String())
	}
	return ""
}

// Map AST to Expression interface

func (e *ASTExpression) ToExpression() Expression {
	if len(e.Or) == 0 {
		return nil
	}
	var expr Expression = e.Or[0].ToExpression()
	for i := 1; i < len(e.Or); i++ {
		expr = &OrExpression{
			Left:  expr,
			Right: e.Or[i].ToExpression(),
		}
	}
	return expr
}

func (o *ASTOrCondition) ToExpression() Expression {
	if len(o.And) == 0 {
		return nil
	}
	var expr Expression = o.And[0].ToExpression()
	for i := 1; i < len(o.And); i++ {
		expr = &AndExpression{
			Left:  expr,
			Right: o.And[i].ToExpression(),
		}
	}
	return expr
}

func (c *ASTCondition) ToExpression() Expression {
	if c.Grouped != nil {
		return c.Grouped.ToExpression()
	}
	if c.Simple != nil {
		op := strings.ToLower(c.Simple.Op)
		return &Condition{
			Filter: NewFilter(c.Simple.Column, op, c.Simple.Value.ToValue()),
		}
	}
	return nil
}

// ToStatement lowers the AST into the statement IR.
func (s *ASTStatement) ToStatement() (*CallStatement, error) {
	st := &CallStatement{
		Explain:  s.Explain,
		Function: s.Call.Function,
		Options:  make(map[string]interface{}),
		Limit:    NoLimit,
	}
	for _, a := range s.Call.Args {
		if a.Option != nil {
			if _, dup := st.Options[a.Option.Name]; dup {
				return nil, fmt.Errorf("option '%s' given twice", a.Option.Name)
			}
			st.Options[a.Option.Name] = a.Option.Value.ToValue()
			st.optionOrder = append(st.optionOrder, a.Option.Name)
			continue
		}
		if len(st.Options) > 0 {
			return nil, fmt.Errorf("positional argument after named option")
		}
		st.Args = append(st.Args, a.Literal.ToValue())
	}
	for _, y := range s.Yield {
		st.Yield = append(st.Yield, yieldColumn(y.Name, y.Alias))
	}
	if s.Where != nil {
		st.Filter = s.Where.ToExpression()
		st.FilterText = s.Where.String()
	}
	if s.Limit != nil {
		if *s.Limit < 0 {
			return nil, fmt.Errorf("LIMIT must not be negative")
		}
		st.Limit = *s.Limit
	}
	return st, nil
}
