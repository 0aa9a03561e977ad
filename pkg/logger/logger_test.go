package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"error":   slog.LevelError,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"verbose": slog.LevelDebug,
	}
	for in, want := range cases {
		if got := levelFromString(in); got != want {
			t.Fatalf("levelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriterFormats(t *testing.T) {
	t.Parallel()

	var jsonBuf bytes.Buffer
	NewWithWriter(&jsonBuf, "info", "json").Info("ingest finished", "new", 2)

	var record map[string]any
	if err := json.Unmarshal(jsonBuf.Bytes(), &record); err != nil {
		t.Fatalf("expected json line, got %q: %v", jsonBuf.String(), err)
	}
	if record["msg"] != "ingest finished" || record["new"] != float64(2) {
		t.Fatalf("unexpected record: %v", record)
	}

	var textBuf bytes.Buffer
	logger := NewWithWriter(&textBuf, "warn", "text")
	logger.Info("hidden")
	logger.Warn("shown", "component", "pipeline")
	out := textBuf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "component=pipeline") {
		t.Fatalf("unexpected text output: %q", out)
	}
}
