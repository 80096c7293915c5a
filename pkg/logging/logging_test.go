package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupLoggerJSON(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger, cleanup, err := SetupLogger(Config{Level: "warn", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("SetupLogger failed: %v", err)
	}
	defer cleanup()

	logger.Info("hidden")
	logger.Warn("shown", "table", "person")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered: %s", out)
	}
	if !strings.Contains(out, `"table":"person"`) {
		t.Errorf("expected JSON attribute, got: %s", out)
	}
}

func TestSetupLoggerInvalidFormat(t *testing.T) {
	if _, _, err := SetupLogger(Config{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestMultiHandler(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug should be enabled by the first handler")
	}

	logger := slog.New(h).With("execution", "x1")
	logger.Debug("claimed")
	logger.Error("failed")

	if !strings.Contains(a.String(), "claimed") || !strings.Contains(a.String(), "execution=x1") {
		t.Errorf("first handler missing records: %s", a.String())
	}
	if strings.Contains(b.String(), "claimed") {
		t.Errorf("second handler should drop debug: %s", b.String())
	}
	if !strings.Contains(b.String(), "failed") {
		t.Errorf("second handler missing error record: %s", b.String())
	}
}
