package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestRequestLogger_LogsStatusAndPath(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	rec := httptest.NewRecorder()
	RequestLogger(inner).ServeHTTP(rec, httptest.NewRequest("POST", "/api/selection/3", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log: %v (%s)", err, buf.String())
	}
	if entry["path"] != "/api/selection/3" || entry["status"] != float64(http.StatusConflict) || entry["level"] != "INFO" {
		t.Errorf("unexpected log entry: %v", entry)
	}
}

func TestRequestLogger_Levels(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	RequestLogger(ok).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/health", nil))
	if buf.Len() != 0 {
		t.Errorf("health check should log below INFO, got %s", buf.String())
	}

	fail := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	RequestLogger(fail).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/health", nil))
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log: %v", err)
	}
	if entry["level"] != "WARN" {
		t.Errorf("expected WARN for 503, got %v", entry["level"])
	}
}
