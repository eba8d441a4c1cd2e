package logging

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const badKey = "!BADKEY"

// fields turns key/value pairs into zap fields and appends the trace and span
// ids found in ctx. A non-string key or a dangling value is logged under
// badKey instead of being dropped.
func fields(ctx context.Context, args []any) []zap.Field {
	out := make([]zap.Field, 0, len(args)/2+2)
	for len(args) > 0 {
		switch key := args[0].(type) {
		case zap.Field:
			out = append(out, key)
			args = args[1:]
			continue
		case string:
			if len(args) == 1 {
				out = append(out, zap.String(badKey, key))
				args = nil
				continue
			}
			out = append(out, field(key, args[1]))
			args = args[2:]
		default:
			out = append(out, zap.String(badKey, fmt.Sprint(key)))
			args = args[1:]
		}
	}

	if ctx == nil {
		return out
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		out = append(out,
			zap.Stringer("trace_id", sc.TraceID()),
			zap.Stringer("span_id", sc.SpanID()),
		)
	}
	return out
}

func field(key string, value any) zap.Field {
	if err, ok := value.(error); ok {
		return zap.NamedError(key, err)
	}
	return zap.Any(key, value)
}
