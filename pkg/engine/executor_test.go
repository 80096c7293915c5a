package engine

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/graph"
	"github.com/bisegni/grapharscan/pkg/graphar"
	"github.com/bisegni/grapharscan/pkg/planner"
)

func newCatalog(t *testing.T) *database.Catalog {
	t.Helper()
	v := &graph.VertexInfo{
		Type:      "person",
		ChunkSize: 100,
		PropertyGroups: []*graph.PropertyGroup{{Properties: []graph.Property{
			{Name: "id", Type: graph.TypeInt64},
			{Name: "name", Type: graph.TypeString},
			{Name: "born", Type: graph.TypeDate},
		}}},
	}
	info, err := graph.NewGraphInfo("g", "", v)
	if err != nil {
		t.Fatal(err)
	}
	store := graph.NewMemoryStore()
	store.AddGraph("g.yml", info)
	rows := []map[string]interface{}{
		{"id": int64(1), "name": "Alice", "born": time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"id": int64(2), "name": "Bob", "born": nil},
	}
	if err := store.SetRows("g.yml", "person", rows); err != nil {
		t.Fatal(err)
	}
	catalog := database.NewCatalog()
	graphar.Register(catalog, store)
	return catalog
}

var settings = planner.Settings{Workers: 1, VectorCapacity: 64}

func TestExecutorFilter(t *testing.T) {
	executor := NewExecutor()

	var buf bytes.Buffer
	err := executor.Run(context.Background(),
		"CALL GRAPHAR_SCAN('g.yml', table_name := 'person') YIELD id, name WHERE id > 1",
		newCatalog(t), settings, &buf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "Alice") {
		t.Errorf("Expected Alice to be filtered out, got: %s", out)
	}
	if strings.TrimSpace(out) != `{"id":2,"name":"Bob"}` {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestExecutorNulls(t *testing.T) {
	var buf bytes.Buffer
	err := NewExecutor().Run(context.Background(),
		"CALL GRAPHAR_SCAN('g.yml', table_name := 'person') YIELD born WHERE born < '2000-01-01'",
		newCatalog(t), settings, &buf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != `{"born":"1990-01-02T00:00:00Z"}` {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestExecutorPretty(t *testing.T) {
	executor := &Executor{Format: FormatJSONL, Pretty: true}

	var buf bytes.Buffer
	err := executor.Run(context.Background(),
		"CALL GRAPHAR_SCAN('g.yml', table_name := 'person') YIELD name LIMIT 1",
		newCatalog(t), settings, &buf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if buf.String() != "{\n  \"name\": \"Alice\"\n}\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestExecutorTable(t *testing.T) {
	executor := &Executor{Format: FormatTable}

	var buf bytes.Buffer
	err := executor.Run(context.Background(),
		"CALL GRAPHAR_SCAN('g.yml', table_name := 'person')",
		newCatalog(t), settings, &buf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "NAME", "BORN", "Alice", "1990-01-02", "NULL", "2 ROWS"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestExecutorExplain(t *testing.T) {
	var buf bytes.Buffer
	err := NewExecutor().Run(context.Background(),
		"EXPLAIN CALL GRAPHAR_SCAN('g.yml', table_name := 'person') WHERE id = 1 LIMIT 3",
		newCatalog(t), settings, &buf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Limit(3)", "Filter(expression: id = 1)", "TableFunction(GRAPHAR_SCAN"} {
		if !strings.Contains(out, want) {
			t.Errorf("plan missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Alice") {
		t.Errorf("EXPLAIN must not execute: %s", out)
	}
}

func TestExecutorUnknownFormat(t *testing.T) {
	catalog := newCatalog(t)
	var buf bytes.Buffer
	err := (&Executor{Format: "xml"}).Run(context.Background(),
		"CALL GRAPHAR_SCAN('g.yml', table_name := 'person')", catalog, settings, &buf)
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}
