package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", cfg.Workers, runtime.NumCPU())
	}
	if cfg.VectorCapacity != 2048 {
		t.Errorf("VectorCapacity = %d, want 2048", cfg.VectorCapacity)
	}
	if cfg.Output.Format != "jsonl" {
		t.Errorf("Output.Format = %q, want jsonl", cfg.Output.Format)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "grapharscan.yaml")
	content := "workers: 3\noutput:\n  format: table\nlog:\n  level: debug\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GRAPHAR_VECTOR_CAPACITY", "128")
	t.Setenv("GRAPHAR_LOG_LEVEL", "error")

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.VectorCapacity != 128 {
		t.Errorf("VectorCapacity = %d, want 128", cfg.VectorCapacity)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("Output.Format = %q, want table", cfg.Output.Format)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, env should win over file", cfg.Log.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{Workers: 0, VectorCapacity: 1, CacheChunks: 1, Output: OutputConfig{Format: "csv"}}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"workers", "output.format"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %s", msg, want)
		}
	}
}
