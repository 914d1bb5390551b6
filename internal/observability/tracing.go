package observability

import (
	"context"

	"github.com/agenthands/kinship/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Mark names a timed stage of the graph pipeline.
type Mark string

const (
	MarkGroup      Mark = "graph.group"
	MarkAssemble   Mark = "graph.assemble"
	MarkClusterize Mark = "graph.clusterize"
	MarkClosure    Mark = "graph.closure"
	MarkSeed       Mark = "graph.seed"
	MarkStoreRead  Mark = "store.read"
)

const instrumentationName = "github.com/agenthands/kinship"

// Tracer opens spans for marks. The zero value is not usable; use NewTracer.
type Tracer struct {
	tracer trace.Tracer
}

func NewTracer(tp trace.TracerProvider) *Tracer {
	return &Tracer{tracer: tp.Tracer(instrumentationName)}
}

// NopTracer returns a tracer whose spans record nothing.
func NopTracer() *Tracer {
	return NewTracer(noop.NewTracerProvider())
}

func (t *Tracer) Start(ctx context.Context, mark Mark, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, string(mark), trace.WithAttributes(attrs...))
}

// Trace runs fn inside a span for mark and records its error on the span.
func (t *Tracer) Trace(ctx context.Context, mark Mark, fn func(context.Context) error) error {
	ctx, span := t.Start(ctx, mark)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// NewTracerProvider builds the provider described by cfg. When tracing is
// disabled it returns a no-op provider. The returned function flushes and
// stops the provider.
func NewTracerProvider(cfg config.TracingConfig, log *zap.SugaredLogger) (trace.TracerProvider, func(context.Context) error) {
	if !cfg.Enabled {
		return noop.NewTracerProvider(), func(context.Context) error { return nil }
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(newMarkLogger(cfg.Marks, log)),
	)
	otel.SetTracerProvider(tp)

	log.Infow("Tracing enabled", "marks", cfg.Marks)
	return tp, tp.Shutdown
}

// markLogger logs the duration of every ended span whose name is an active
// mark. An empty mark list activates all of them.
type markLogger struct {
	active map[string]bool
	log    *zap.SugaredLogger
}

func newMarkLogger(marks []string, log *zap.SugaredLogger) *markLogger {
	active := make(map[string]bool, len(marks))
	for _, m := range marks {
		active[m] = true
	}
	return &markLogger{active: active, log: log}
}

func (m *markLogger) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {}

func (m *markLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	if len(m.active) > 0 && !m.active[s.Name()] {
		return
	}
	m.log.Infow("Mark",
		"mark", s.Name(),
		"duration", s.EndTime().Sub(s.StartTime()),
		"status", s.Status().Code.String(),
	)
}

func (m *markLogger) Shutdown(ctx context.Context) error { return nil }

func (m *markLogger) ForceFlush(ctx context.Context) error { return nil }
