package query

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/bisegni/grapharscan/pkg/database"
)

// NoLimit marks a statement without LIMIT.
const NoLimit int64 = -1

// CallStatement is the parsed form of
//
//	[EXPLAIN] CALL fn('path', opt := value, ...) [YIELD col [AS alias], ...] [WHERE expr] [LIMIT n]
type CallStatement struct {
	Explain    bool
	Function   string
	Args       []interface{}
	Options    map[string]interface{}
	Yield      []database.YieldColumn
	Filter     Expression
	FilterText string
	Limit      int64

	optionOrder []string
}

func (s *CallStatement) String() string {
	var b strings.Builder
	if s.Explain {
		b.WriteString("EXPLAIN ")
	}
	b.WriteString("CALL " + s.Function + "(")
	var args []string
	for _, a := range s.Args {
		args = append(args, literal(a))
	}
	for _, name := range s.optionOrder {
		args = append(args, name+" := "+literal(s.Options[name]))
	}
	b.WriteString(strings.Join(args, ", ") + ")")
	if len(s.Yield) > 0 {
		var items []string
		for _, y := range s.Yield {
			item := y.Name
			if y.Alias != "" {
				item += " AS " + y.Alias
			}
			items = append(items, item)
		}
		b.WriteString(" YIELD " + strings.Join(items, ", "))
	}
	if s.FilterText != "" {
		b.WriteString(" WHERE " + s.FilterText)
	}
	if s.Limit != NoLimit {
		fmt.Fprintf(&b, " LIMIT %d", s.Limit)
	}
	return b.String()
}

func literal(v interface{}) string {
	switch x := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(x, "'", "''") + "'"
	case bool:
		return strings.ToUpper(fmt.Sprint(x))
	default:
		return fmt.Sprint(x)
	}
}

func yieldColumn(name, alias string) database.YieldColumn {
	return database.YieldColumn{Name: name, Alias: alias}
}

// Lexer definition
var (
	callLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Keyword", Pattern: `(?i)\b(EXPLAIN|CALL|YIELD|WHERE|LIMIT|AS|AND|OR|TRUE|FALSE|CONTAINS)\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Number", Pattern: `[-+]?\d*\.?\d+`},
		{Name: "String", Pattern: `'(?:[^']|'')*'|"[^"]*"`},
		{Name: "Operator", Pattern: `:=|>=|<=|!=|[=<>]`},
		{Name: "Punct", Pattern: `[,();]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	statementParser = participle.MustBuild[ASTStatement](
		participle.Lexer(callLexer),
		participle.Map(unquote, "String"),
		participle.CaseInsensitive("Keyword"),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	expressionParser = participle.MustBuild[ASTExpression](
		participle.Lexer(callLexer),
		participle.Map(unquote, "String"),
		participle.CaseInsensitive("Keyword"),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
)

// unquote strips the quotes of a string token; '' inside single quotes is a quote.
func unquote(t lexer.Token) (lexer.Token, error) {
	v := t.Value
	if len(v) >= 2 {
		q := v[0]
		v = v[1 : len(v)-1]
		if q == '\'' {
			v = strings.ReplaceAll(v, "''", "'")
		}
	}
	t.Value = v
	return t, nil
}

// ParseStatement parses a CALL statement.
func ParseStatement(input string) (*CallStatement, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty statement")
	}

	ast, err := statementParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return ast.ToStatement()
}

// ParseExpression parses a standalone WHERE expression such as
// "age > 30 AND (name = 'Amy' OR name = 'Bo')".
func ParseExpression(input string) (Expression, string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, "", fmt.Errorf("empty expression")
	}
	ast, err := expressionParser.ParseString("", input)
	if err != nil {
		return nil, "", fmt.Errorf("parse error: %w", err)
	}
	return ast.ToExpression(), ast.String(), nil
}
