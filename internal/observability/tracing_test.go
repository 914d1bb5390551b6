package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/agenthands/kinship/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTracer_Trace(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	tracer := NewTracer(tp)

	err := tracer.Trace(context.Background(), MarkAssemble, func(ctx context.Context) error {
		_, span := tracer.Start(ctx, MarkGroup)
		span.End()
		return nil
	})
	require.NoError(t, err)

	failure := errors.New("boom")
	err = tracer.Trace(context.Background(), MarkSeed, func(context.Context) error { return failure })
	assert.ErrorIs(t, err, failure)

	spans := rec.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, string(MarkGroup), spans[0].Name())
	assert.Equal(t, string(MarkAssemble), spans[1].Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Equal(t, string(MarkSeed), spans[2].Name())
	assert.Equal(t, codes.Error, spans[2].Status().Code)
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, shutdown := NewTracerProvider(config.TracingConfig{}, zap.NewNop().Sugar())

	_, span := NewTracer(tp).Start(context.Background(), MarkClosure)
	span.End()

	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewTracerProvider_LogsActiveMarks(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	cfg := config.TracingConfig{Enabled: true, Marks: []string{string(MarkClusterize)}}

	tp, shutdown := NewTracerProvider(cfg, zap.New(core).Sugar())
	defer shutdown(context.Background())
	tracer := NewTracer(tp)

	_, span := tracer.Start(context.Background(), MarkClusterize)
	span.End()
	_, span = tracer.Start(context.Background(), MarkStoreRead)
	span.End()

	entries := logs.FilterMessage("Mark").All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(MarkClusterize), entries[0].ContextMap()["mark"])
}

func TestMarkLogger_AllMarksWhenUnset(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(newMarkLogger(nil, zap.New(core).Sugar())))
	tracer := NewTracer(tp)

	for _, m := range []Mark{MarkGroup, MarkAssemble, MarkClosure} {
		_, span := tracer.Start(context.Background(), m)
		span.End()
	}

	assert.Equal(t, 3, logs.FilterMessage("Mark").Len())
}
