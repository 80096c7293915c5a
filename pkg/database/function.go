package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingOption is returned when a required named option is absent.
	ErrMissingOption = errors.New("missing required option")
	// ErrArgumentMismatch is returned when positional arguments do not match the declaration.
	ErrArgumentMismatch = errors.New("argument mismatch")
)

// YieldColumn selects an output column of a table function and optionally renames it.
type YieldColumn struct {
	Name  string
	Alias string
}

// OutputName is the name the column takes in the result.
func (y YieldColumn) OutputName() string {
	if y.Alias != "" {
		return y.Alias
	}
	return y.Name
}

// BindInput carries everything a table function may look at while binding.
type BindInput struct {
	Args    []interface{}
	Options map[string]interface{}
	Yield   []YieldColumn

	// Engine hints.
	MaxWorkers     int
	VectorCapacity int
}

// StringOption returns a string-valued option.
func (in *BindInput) StringOption(name string) (string, bool) {
	v, ok := in.lookup(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// IntOption returns an integer-valued option. Numbers parsed as float64 are accepted
// when they carry no fractional part.
func (in *BindInput) IntOption(name string) (int, bool) {
	v, ok := in.lookup(name)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func (in *BindInput) lookup(name string) (interface{}, bool) {
	if v, ok := in.Options[name]; ok {
		return v, true
	}
	for k, v := range in.Options {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// BindData is the immutable result of binding a table function call.
type BindData interface {
	ColumnNames() []string
	ColumnKinds() []ScalarKind
	// Copy returns a snapshot sharing immutable parts with the receiver.
	Copy() BindData
}

// SharedState is the per-execution state shared by every scan call.
type SharedState interface {
	Exhausted() bool
}

// BindFunc resolves the schema and execution plan of a call.
type BindFunc func(ctx context.Context, input *BindInput) (BindData, error)

// InitSharedStateFunc builds the state for one execution.
type InitSharedStateFunc func(ctx context.Context, bind BindData) (SharedState, error)

// ScanFunc fills out with the next batch and returns the number of rows produced.
// Zero rows means the scan is exhausted for this caller. It may be called
// concurrently with the same state.
type ScanFunc func(state SharedState, bind BindData, out *Batch) (int, error)

// TableFunction is a function usable in the FROM position of a CALL.
type TableFunction struct {
	Name            string
	Parameters      []ScalarKind
	RequiredOptions []string

	Bind            BindFunc
	InitSharedState InitSharedStateFunc
	Scan            ScanFunc
}

// CheckInput validates positional arguments and required options against the declaration.
func (f *TableFunction) CheckInput(in *BindInput) error {
	if len(in.Args) != len(f.Parameters) {
		return fmt.Errorf("%s: %w: expected %d argument(s), got %d",
			f.Name, ErrArgumentMismatch, len(f.Parameters), len(in.Args))
	}
	for i, kind := range f.Parameters {
		if !argMatches(in.Args[i], kind) {
			return fmt.Errorf("%s: %w: argument %d must be %s, got %T",
				f.Name, ErrArgumentMismatch, i+1, kind, in.Args[i])
		}
	}
	for _, name := range f.RequiredOptions {
		if _, ok := in.lookup(name); !ok {
			return fmt.Errorf("%s: %w %q", f.Name, ErrMissingOption, name)
		}
	}
	return nil
}

func argMatches(v interface{}, kind ScalarKind) bool {
	switch kind {
	case KindText:
		_, ok := v.(string)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindInt32, KindInt64, KindFloat32, KindFloat64:
		switch v.(type) {
		case int, int32, int64, float32, float64:
			return true
		}
	}
	return false
}
