package middleware

import (
	"context"
	"net/http"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// TracingMiddleware wraps requests in an opencensus span named "METHOD path".
func TracingMiddleware(next http.Handler) http.Handler {
	handler := &ochttp.Handler{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if span := trace.FromContext(ctx); span != nil {
				span.AddAttributes(
					trace.StringAttribute("http.host", r.Host),
					trace.StringAttribute("http.user_agent", r.UserAgent()),
				)
				if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
					span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
				}
				if orgID := r.Header.Get("X-Organization-ID"); orgID != "" {
					span.AddAttributes(trace.StringAttribute("crm.organization_id", orgID))
				}
			}
			next.ServeHTTP(&traceResponseWriter{ResponseWriter: w, ctx: ctx}, r)
		}),
		FormatSpanName: func(r *http.Request) string {
			return r.Method + " " + r.URL.Path
		},
		IsPublicEndpoint: true,
	}
	return handler
}

// traceResponseWriter records the status code on the active span.
type traceResponseWriter struct {
	http.ResponseWriter
	ctx        context.Context
	statusCode int
}

func (trw *traceResponseWriter) WriteHeader(code int) {
	trw.statusCode = code
	if span := trace.FromContext(trw.ctx); span != nil {
		span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
		if code >= 500 {
			span.SetStatus(trace.Status{Code: trace.StatusCodeUnknown, Message: http.StatusText(code)})
		}
	}
	trw.ResponseWriter.WriteHeader(code)
}

var _ http.ResponseWriter = (*traceResponseWriter)(nil)
