package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger/oteladapters"
)

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	exporter := tracetest.NewInMemoryExporter()
	provider := trace.NewTracerProvider(trace.WithSyncer(exporter))
	collector := oteladapters.NewTracingCollector(provider.Tracer("test"))

	// act
	ctx, spanCtx := collector.StartSpan(context.Background(), "ledger.find_book", map[string]string{"operation": "find_book"})
	collector.FinishSpan(spanCtx, "success", map[string]string{"rows": "1"})

	// assert
	assert.True(t, oteltrace.SpanContextFromContext(ctx).IsValid(), "context should carry the span")

	spans := exporter.GetSpans()
	require.Len(t, spans, 1, "Expected exactly one span")
	assert.Equal(t, "ledger.find_book", spans[0].Name, "Span name should match")
	assert.Equal(t, codes.Ok, spans[0].Status.Code, "Span should have OK status")
	assert.Contains(t, spans[0].Attributes, attribute.String("operation", "find_book"), "start attributes should be kept")
	assert.Contains(t, spans[0].Attributes, attribute.String("rows", "1"), "finish attributes should be added")
}

func Test_TracingCollector_FinishSpan_ErrorStatuses(t *testing.T) {
	testCases := []struct {
		status      string
		description string
	}{
		{status: "error", description: "Operation failed"},
		{status: "timeout", description: "Operation timed out"},
		{status: "conflict", description: "Concurrency conflict"},
		{status: "concurrency_conflict", description: "Concurrency conflict"},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// arrange
			exporter := tracetest.NewInMemoryExporter()
			provider := trace.NewTracerProvider(trace.WithSyncer(exporter))
			collector := oteladapters.NewTracingCollector(provider.Tracer("test"))

			// act
			_, spanCtx := collector.StartSpan(context.Background(), "commandhandler.handle", nil)
			collector.FinishSpan(spanCtx, tc.status, nil)

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1, "Expected exactly one span")
			assert.Equal(t, codes.Error, spans[0].Status.Code, "Span should have error status")
			assert.Equal(t, tc.description, spans[0].Status.Description, "Span should describe the failure")
		})
	}
}

func Test_TracingCollector_FinishSpan_RejectedCommandIsNoSpanError(t *testing.T) {
	// arrange
	exporter := tracetest.NewInMemoryExporter()
	provider := trace.NewTracerProvider(trace.WithSyncer(exporter))
	collector := oteladapters.NewTracingCollector(provider.Tracer("test"))

	// act
	_, spanCtx := collector.StartSpan(context.Background(), "commandhandler.handle", nil)
	collector.FinishSpan(spanCtx, "rejected", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1, "Expected exactly one span")
	assert.Equal(t, codes.Ok, spans[0].Status.Code, "business rejections should not mark the span as failed")
	assert.Contains(t, spans[0].Attributes, attribute.String("status", "rejected"), "status should be visible")
}
