package query

import (
	"testing"
	"time"

	"github.com/bisegni/grapharscan/pkg/database"
)

func row(kv ...interface{}) database.Row {
	om := database.OrderedMap{}
	for i := 0; i < len(kv); i += 2 {
		om = append(om, database.KeyVal{Key: kv[i].(string), Val: kv[i+1]})
	}
	return database.NewRow(om)
}

func TestBooleanLogic(t *testing.T) {
	r := row("val", int64(15), "status", "active", "type", "normal")

	tests := []struct {
		name     string
		where    string
		expected bool
	}{
		{
			name:     "Simple AND - True",
			where:    "val > 10 AND status = 'active'",
			expected: true,
		},
		{
			name:     "Simple AND - False",
			where:    "val > 20 AND status = 'active'",
			expected: false,
		},
		{
			name:     "Simple OR - True",
			where:    "val > 20 OR status = 'active'",
			expected: true,
		},
		{
			name:     "Simple OR - False",
			where:    "val > 20 OR status = 'inactive'",
			expected: false,
		},
		{
			name: "AND with OR - Precedence AND > OR",
			// (True AND False) OR True => True
			where:    "val > 10 AND status = 'inactive' OR type = 'normal'",
			expected: true,
		},
		{
			name: "AND with OR - Precedence AND > OR (Case 2)",
			// True OR (False AND True) => True
			where:    "val > 10 OR status = 'inactive' AND type = 'error'",
			expected: true,
		},
		{
			name:     "Grouped",
			where:    "(val > 10 OR status = 'x') AND type = 'critical'",
			expected: false,
		},
		{
			name:     "Contains, case-insensitive keyword",
			where:    "status contains 'act'",
			expected: true,
		},
		{
			name:     "Missing column never matches",
			where:    "age > 1",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, _, err := ParseExpression(tt.where)
			if err != nil {
				t.Fatalf("ParseExpression failed: %v", err)
			}
			if result := expr.Evaluate(r); result != tt.expected {
				t.Errorf("Evaluate() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestFilterTypes(t *testing.T) {
	born := time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC)
	r := row("id", int64(2), "score", float32(1.5), "active", true, "born", born, "nick", nil)

	tests := []struct {
		where    string
		expected bool
	}{
		{"id = 2", true},
		{"id != 2", false},
		{"id >= 2", true},
		{"score < 2", true},
		{"score = 1.5", true},
		{"active = TRUE", true},
		{"active = false", false},
		{"born > '1989-12-31'", true},
		{"born <= '1990-04-01'", true},
		{"born < '1990-04-01T00:00:00Z'", false},
		{"nick = 'x'", false},
		{"nick != 'x'", false},
		{"id > 'abc'", false},
	}
	for _, tt := range tests {
		expr, _, err := ParseExpression(tt.where)
		if err != nil {
			t.Fatalf("ParseExpression(%q) failed: %v", tt.where, err)
		}
		if got := expr.Evaluate(r); got != tt.expected {
			t.Errorf("%s: got %v, want %v", tt.where, got, tt.expected)
		}
	}
}

func TestExpressionColumns(t *testing.T) {
	expr, text, err := ParseExpression("a = 1 AND (b > 2 OR c CONTAINS 'x')")
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}
	cols := expr.Columns()
	if len(cols) != 3 || cols[0] != "a" || cols[1] != "b" || cols[2] != "c" {
		t.Errorf("Columns() = %v", cols)
	}
	if text != "a = 1 AND (b > 2 OR c CONTAINS 'x')" {
		t.Errorf("String() = %q", text)
	}
}
