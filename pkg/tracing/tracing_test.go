package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupRecorder 使用内存SpanRecorder代替OTLP exporter
func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	shutdown, err := install(context.Background(), Options{
		ServiceName: "catalog-test",
		Environment: "test",
	}, sdktrace.WithSpanProcessor(recorder))
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	return recorder
}

func TestInitTracer(t *testing.T) {
	// 端点不可达也能初始化成功，导出失败只影响Span上报
	shutdown, err := InitTracer(Options{
		ServiceName: "catalog-test",
		Endpoint:    "localhost:4317",
		Insecure:    true,
		SampleRatio: 0.5,
	})
	require.NoError(t, err)
	assert.NotNil(t, shutdown)
}

func TestStartSpan(t *testing.T) {
	recorder := setupRecorder(t)

	ctx, parent := StartSpan(context.Background(), "catalog", "ListRods")
	_, child := StartSpan(ctx, "catalog", "FilterCastingWeight")
	child.SetAttributes(attribute.Int("candidates", 12))
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "FilterCastingWeight", spans[0].Name())
	assert.Equal(t, "ListRods", spans[1].Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID(), "子Span的父Span应为ListRods")
	assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID())
}

func TestRecordError(t *testing.T) {
	recorder := setupRecorder(t)

	_, span := StartSpan(context.Background(), "catalog", "GetProduct")
	RecordError(span, nil)
	RecordError(span, errors.New("record not found"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Len(t, spans[0].Events(), 1)
}

func TestExtractIDs(t *testing.T) {
	setupRecorder(t)

	assert.Empty(t, ExtractTraceID(context.Background()))
	assert.Empty(t, ExtractSpanID(context.Background()))

	ctx, span := StartSpan(context.Background(), "catalog", "op")
	defer span.End()

	assert.Len(t, ExtractTraceID(ctx), 32)
	assert.Len(t, ExtractSpanID(ctx), 16)
}
