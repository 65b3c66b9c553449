package tracing

import (
	"context"
	"testing"

	"github.com/cloud-ru/mcp-amortization-go/internal/config"
	"github.com/cloud-ru/mcp-amortization-go/internal/log"
)

func TestInitTracingWithoutEndpoint(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{OTELServiceName: "amortization-test"}

	tracer, shutdown, err := InitTracing(ctx, cfg, log.Discard())
	if err != nil {
		t.Fatalf("InitTracing() error = %v", err)
	}

	_, span := tracer.Start(ctx, "amortization_schedule")
	if !span.SpanContext().IsValid() {
		t.Error("expected a recording span with a valid context")
	}
	span.End()

	if err := shutdown(ctx); err != nil {
		t.Errorf("shutdown error = %v", err)
	}
}
