package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/club-analytics/internal/platform/tracing"
)

// Only handler methods get their own spans.
var apiSpans = tracing.NewScope("club-analytics/internal/interfaces/httpapi", shouldCreateHTTPAPISpan)

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiSpans.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
