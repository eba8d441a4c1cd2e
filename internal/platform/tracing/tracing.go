// Package tracing starts child spans only inside an existing trace, so
// helpers never open root spans of their own.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Scope is a named tracer with an optional span-name filter.
type Scope struct {
	tracer trace.Tracer
	accept func(name string) bool
}

// NewScope returns a scope for instrumentation name. accept may be nil to
// trace every span name.
func NewScope(name string, accept func(spanName string) bool) Scope {
	return Scope{tracer: otel.Tracer(name), accept: accept}
}

// Start opens a child span when ctx already carries a valid span and the name
// passes the filter. Otherwise it returns ctx and the span already in ctx,
// whose End is then a no-op for the caller.
func (s Scope) Start(ctx context.Context, name string) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noop
	}
	if s.accept != nil && !s.accept(name) {
		return ctx, noop
	}
	return s.tracer.Start(ctx, name)
}

var noop = trace.SpanFromContext(context.Background())
