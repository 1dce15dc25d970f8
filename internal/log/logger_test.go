package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLogger_JSONFormatCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Format: "json", Component: ComponentTracker, Output: &buf})

	logger.WithFields(NewFields().WithOperation(OpSave).WithKey("expenses").WithError(errors.New("boom"))).
		Warn("Persist failed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry[FieldComponent] != ComponentTracker {
		t.Errorf("component = %v, want %v", entry[FieldComponent], ComponentTracker)
	}
	if entry[FieldOperation] != OpSave || entry[FieldKey] != "expenses" || entry[FieldError] != "boom" {
		t.Errorf("unexpected fields: %v", entry)
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: slog.LevelInfo, Component: ComponentApp, Output: &buf})
	worker := base.WithComponent(ComponentWorker)

	worker.Info("tick")
	worker.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "component=worker") {
		t.Errorf("missing component in %q", out)
	}
	if strings.Count(out, "component=") != 1 {
		t.Errorf("component logged more than once: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level: %q", out)
	}
	if base.Component() != ComponentApp || worker.Component() != ComponentWorker {
		t.Errorf("components = %q, %q", base.Component(), worker.Component())
	}
}

func TestFromContext(t *testing.T) {
	logger := Discard().WithComponent(ComponentCLI)
	ctx := WithContext(context.Background(), logger)
	if got := FromContext(ctx); got != logger {
		t.Errorf("FromContext() returned a different logger")
	}
	if got := FromContext(context.Background()); got.Component() != "unknown" {
		t.Errorf("fallback component = %q, want unknown", got.Component())
	}
}
