package database

import (
	"errors"
	"testing"
	"time"
)

func TestBatchValues(t *testing.T) {
	kinds := []ScalarKind{KindInt64, KindText, KindBool, KindDate}
	b := NewBatch(kinds, 4)

	if b.Capacity() != 4 {
		t.Fatalf("Expected capacity 4, got %d", b.Capacity())
	}

	day := time.Date(2010, 1, 2, 0, 0, 0, 0, time.UTC)
	b.Vector(0).Int64s[0] = 7
	b.Vector(1).Strings[0] = "Amy"
	b.Vector(2).Bools[0] = true
	b.Vector(3).Times[0] = day
	b.Vector(1).SetNull(1, true)
	b.SetSize(2)

	got := b.Values(0)
	if got[0] != int64(7) || got[1] != "Amy" || got[2] != true || got[3] != day {
		t.Errorf("Unexpected row 0: %v", got)
	}
	if b.Values(1)[1] != nil {
		t.Errorf("Expected NULL in row 1 column 1, got %v", b.Values(1)[1])
	}
	if b.Size() != 2 {
		t.Errorf("Expected size 2, got %d", b.Size())
	}

	b.Reset()
	if b.Size() != 0 {
		t.Errorf("Expected size 0 after reset, got %d", b.Size())
	}
}

func TestBatchSetSizeOverflow(t *testing.T) {
	b := NewBatch(nil, 2)
	defer func() {
		if recover() == nil {
			t.Error("Expected panic when size exceeds capacity")
		}
	}()
	b.SetSize(3)
}

func TestBatchDefaultCapacity(t *testing.T) {
	b := NewBatch([]ScalarKind{KindFloat32}, 0)
	if b.Capacity() != DefaultVectorCapacity {
		t.Errorf("Expected default capacity %d, got %d", DefaultVectorCapacity, b.Capacity())
	}
	if len(b.Vector(0).Float32s) != DefaultVectorCapacity {
		t.Errorf("Float vector not allocated to capacity")
	}
}

func TestBatchRow(t *testing.T) {
	b := NewBatch([]ScalarKind{KindInt32, KindFloat64}, 2)
	b.Vector(0).Int32s[1] = 3
	b.Vector(1).Float64s[1] = 1.5
	b.SetSize(2)

	row := BatchRow([]string{"n", "x"}, b, 1)
	v, err := row.Get("x")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != 1.5 {
		t.Errorf("Expected 1.5, got %v", v)
	}
	if _, err := row.Get("missing"); err == nil {
		t.Error("Expected error for missing column")
	}
	if s := row.Primitive().(OrderedMap).String(); s != `{"n":3,"x":1.5}` {
		t.Errorf("Unexpected JSON: %s", s)
	}
}

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	c.RegisterFunction(&TableFunction{Name: "GRAPHAR_SCAN"})

	f, err := c.GetFunction("graphar_scan")
	if err != nil {
		t.Fatalf("GetFunction failed: %v", err)
	}
	if f.Name != "GRAPHAR_SCAN" {
		t.Errorf("Unexpected function %s", f.Name)
	}
	if _, err := c.GetFunction("nope"); err == nil {
		t.Error("Expected error for unknown function")
	}
	if names := c.FunctionNames(); len(names) != 1 || names[0] != "GRAPHAR_SCAN" {
		t.Errorf("Unexpected names %v", names)
	}
}

func TestCheckInput(t *testing.T) {
	f := &TableFunction{
		Name:            "GRAPHAR_SCAN",
		Parameters:      []ScalarKind{KindText},
		RequiredOptions: []string{"table_name"},
	}

	tests := []struct {
		name    string
		input   BindInput
		wantErr error
	}{
		{
			name:  "valid",
			input: BindInput{Args: []interface{}{"g.yml"}, Options: map[string]interface{}{"table_name": "person"}},
		},
		{
			name:  "option case-insensitive",
			input: BindInput{Args: []interface{}{"g.yml"}, Options: map[string]interface{}{"TABLE_NAME": "person"}},
		},
		{
			name:    "missing option",
			input:   BindInput{Args: []interface{}{"g.yml"}},
			wantErr: ErrMissingOption,
		},
		{
			name:    "wrong arity",
			input:   BindInput{Options: map[string]interface{}{"table_name": "person"}},
			wantErr: ErrArgumentMismatch,
		},
		{
			name:    "wrong kind",
			input:   BindInput{Args: []interface{}{float64(1)}, Options: map[string]interface{}{"table_name": "person"}},
			wantErr: ErrArgumentMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.CheckInput(&tt.input)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBindInputOptions(t *testing.T) {
	in := &BindInput{Options: map[string]interface{}{
		"table_name": "person",
		"batch_size": float64(16),
		"ratio":      float64(1.5),
	}}
	if s, ok := in.StringOption("table_name"); !ok || s != "person" {
		t.Errorf("Unexpected table_name %q %v", s, ok)
	}
	if n, ok := in.IntOption("batch_size"); !ok || n != 16 {
		t.Errorf("Unexpected batch_size %d %v", n, ok)
	}
	if _, ok := in.IntOption("ratio"); ok {
		t.Error("Expected fractional number to be rejected as int")
	}
	if _, ok := in.StringOption("batch_size"); ok {
		t.Error("Expected number to be rejected as string")
	}
}

func TestScalarKindString(t *testing.T) {
	if got := KindFloat64.String(); got != "DOUBLE" {
		t.Errorf("KindFloat64.String() = %q", got)
	}
	bad := ScalarKind(200)
	if bad.Valid() {
		t.Error("ScalarKind(200) should not be valid")
	}
	if got := bad.String(); got != "KIND(200)" {
		t.Errorf("ScalarKind(200).String() = %q", got)
	}
}
