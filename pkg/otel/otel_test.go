package otel

import (
	"context"
	"io"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"foodorder/pkg/logger"
)

func TestGetTraceIDWithoutSpan(t *testing.T) {
	if id := GetTraceID(context.Background()); id != "" {
		t.Fatalf("expected empty trace id, got %q", id)
	}
}

func TestAddSpanUsesInjectedTracer(t *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
	defer tp.Shutdown(context.Background())

	ctx := InjectTracing(context.Background(), tp.Tracer("test"))
	ctx, span := AddSpan(ctx, "op")
	defer span.End()

	id := GetTraceID(ctx)
	if len(id) != 32 {
		t.Fatalf("expected 32 hex chars trace id, got %q", id)
	}
}

func TestInitTracingWithoutHost(t *testing.T) {
	log := logger.New(io.Discard, logger.LevelInfo, "test", GetTraceID)
	tp, shutdown, err := InitTracing(log, Config{ServiceName: "test", Probability: 1})
	if err != nil {
		t.Fatalf("init tracing: %v", err)
	}
	defer shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	if GetTraceID(ctx) == "" {
		t.Fatal("expected sampled span to carry a trace id")
	}
}
