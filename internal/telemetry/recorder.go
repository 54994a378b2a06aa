package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/sdk/trace"
)

// SpanRecorder is an in-process exporter for asserting on spans in tests.
type SpanRecorder struct {
	mu    sync.RWMutex
	spans []trace.ReadOnlySpan
}

func NewSpanRecorder() *SpanRecorder {
	return &SpanRecorder{}
}

func (r *SpanRecorder) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spans = append(r.spans, spans...)
	return nil
}

func (r *SpanRecorder) Shutdown(ctx context.Context) error {
	return nil
}

func (r *SpanRecorder) SpansByName(name string) []trace.ReadOnlySpan {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []trace.ReadOnlySpan
	for _, span := range r.spans {
		if span.Name() == name {
			result = append(result, span)
		}
	}
	return result
}

func (r *SpanRecorder) SpansByOperation(operation string) []trace.ReadOnlySpan {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []trace.ReadOnlySpan
	for _, span := range r.spans {
		for _, attr := range span.Attributes() {
			if attr.Key == "operation" && attr.Value.AsString() == operation {
				result = append(result, span)
				break
			}
		}
	}
	return result
}

func (r *SpanRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spans = nil
}

// NewTestTracerProvider exports synchronously so spans are visible as soon as they end.
func NewTestTracerProvider(recorder *SpanRecorder) *trace.TracerProvider {
	return trace.NewTracerProvider(trace.WithSyncer(recorder))
}
