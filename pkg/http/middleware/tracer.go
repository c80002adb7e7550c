package middleware

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "employee-api"

// Tracer starts a server span for every request, continuing any W3C trace context sent by the caller.
func Tracer(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := otel.GetTracerProvider().Tracer(tracerName).Start(ctx,
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
			),
		)
		defer span.End()

		srw := &StatusResponseWriter{ResponseWriter: w}

		inner.ServeHTTP(srw, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.response.status_code", srw.status))

		if srw.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(srw.status))
		}
	})
}
