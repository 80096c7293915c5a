package query

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/bisegni/grapharscan/pkg/database"
)

// Filter represents a filtering condition
type Filter struct {
	Field    string
	Operator string
	Value    interface{}
}

// NewFilter creates a new filter
func NewFilter(field, operator string, value interface{}) *Filter {
	return &Filter{
		Field:    field,
		Operator: operator,
		Value:    value,
	}
}

// Match checks if a row matches the filter. NULL never matches.
func (f *Filter) Match(row database.Row) bool {
	value, err := row.Get(f.Field)
	if err != nil || value == nil {
		return false
	}
	return f.matchValue(value)
}

func (f *Filter) matchValue(value interface{}) bool {
	switch f.Operator {
	case "=", "==":
		return compareEqual(value, f.Value)
	case "!=":
		return !compareEqual(value, f.Value)
	case ">":
		c, ok := compareValues(value, f.Value)
		return ok && c > 0
	case ">=":
		c, ok := compareValues(value, f.Value)
		return ok && c >= 0
	case "<":
		c, ok := compareValues(value, f.Value)
		return ok && c < 0
	case "<=":
		c, ok := compareValues(value, f.Value)
		return ok && c <= 0
	case "contains":
		return containsValue(value, f.Value)
	default:
		return false
	}
}

func compareEqual(a, b interface{}) bool {
	if av, ok := a.(bool); ok {
		bv, ok := b.(bool)
		return ok && av == bv
	}
	if c, ok := compareValues(a, b); ok {
		return c == 0
	}
	// Fallback to string comparison for other types
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// compareValues orders a column value against a literal. Strings compare
// lexically, numbers numerically and dates or timestamps chronologically
// against a literal in one of the accepted layouts.
func compareValues(a, b interface{}) (int, bool) {
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(as, bs), true
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := toTime(b)
		if !ok {
			return 0, false
		}
		return at.Compare(bt), true
	}
	af, aok := toFloat64(a)
	bf, bok := toFloat64(b)
	if aok && bok {
		return cmp.Compare(af, bf), true
	}
	return 0, false
}

func containsValue(a, b interface{}) bool {
	// Handle string types directly for efficiency
	if aStr, ok := a.(string); ok {
		if bStr, ok := b.(string); ok {
			return strings.Contains(aStr, bStr)
		}
		return strings.Contains(aStr, fmt.Sprintf("%v", b))
	}
	// Fallback to string conversion for other types
	return strings.Contains(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
}

func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	default:
		return 0, false
	}
}

var timeLayouts = []string{time.RFC3339Nano, time.DateTime, time.DateOnly}

func toTime(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return t, true
			}
		}
	case float64:
		return time.UnixMilli(int64(val)).UTC(), true
	}
	return time.Time{}, false
}
