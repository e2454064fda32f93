package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "foodorder", func(context.Context) string { return "abc123" })

	log.Info(context.Background(), "order created", "id", "42")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode record %q: %v", buf.String(), err)
	}
	if rec["msg"] != "order created" {
		t.Fatalf("unexpected msg: %v", rec["msg"])
	}
	if rec["service"] != "foodorder" {
		t.Fatalf("unexpected service: %v", rec["service"])
	}
	if rec["id"] != "42" {
		t.Fatalf("unexpected id: %v", rec["id"])
	}
	if rec["trace_id"] != "abc123" {
		t.Fatalf("unexpected trace_id: %v", rec["trace_id"])
	}
}

func TestLoggerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, "foodorder", nil)

	log.Info(context.Background(), "dropped")
	log.Error(context.Background(), "kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info record should be filtered: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("error record missing: %s", out)
	}
}

func TestLoggerOmitsEmptyTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelDebug, "foodorder", func(context.Context) string { return "" })

	log.Debug(context.Background(), "no span")

	if strings.Contains(buf.String(), "trace_id") {
		t.Fatalf("trace_id should be omitted: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        LevelInfo,
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
