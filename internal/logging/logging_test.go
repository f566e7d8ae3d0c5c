package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupWriter_ErrorCarriesStacktrace(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logger := SetupWriter(&buf, "INFO")
	logger.Debug("dropped")
	logger.Error("export failed", "kind", "quotation")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line (debug filtered), got %d: %s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal(lines[0], &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["msg"] != "export failed" || rec["kind"] != "quotation" || rec["service"] != "sakecatalog" {
		t.Errorf("unexpected record: %v", rec)
	}
	if _, ok := rec["stacktrace"]; !ok {
		t.Error("expected stacktrace on ERROR record")
	}
}
