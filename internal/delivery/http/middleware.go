package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/audit"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/tracing"
	"github.com/mutugading/goapps-backend/services/catalog/pkg/logger"
	"github.com/mutugading/goapps-backend/services/catalog/pkg/response"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// ContextKey for context values.
type ContextKey string

// RequestIDKey is the context key for request ID.
const RequestIDKey ContextKey = "request_id"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares so that the first one is the outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.written {
		r.status = code
		r.written = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.written = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

type routeKey struct{}

// routeHolder carries the matched mux pattern back out to the outer middlewares.
type routeHolder struct {
	pattern string
}

// withRoute installs an empty routeHolder. It must wrap every middleware that reads the route.
func withRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), routeKey{}, &routeHolder{})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// recordRoute wraps the mux and stores the pattern it matched.
func recordRoute(mux http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r)
		if holder, ok := r.Context().Value(routeKey{}).(*routeHolder); ok && r.Pattern != "" {
			holder.pattern = r.Pattern
		}
	})
}

// routeOf returns the matched mux pattern, available once the mux has served r.
func routeOf(r *http.Request) string {
	if holder, ok := r.Context().Value(routeKey{}).(*routeHolder); ok && holder.pattern != "" {
		return holder.pattern
	}
	return "unmatched"
}

// RecoveryMiddleware converts panics into 500 responses.
func RecoveryMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.FromContext(r.Context()).Error().
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Interface("panic", rec).
						Msg("Panic recovered in HTTP handler")

					response.Write(w, response.WithData(response.InternalError("internal server error"), nil))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RequestIDMiddleware propagates or generates a request id and attaches it to the
// context, the request logger and the audit context.
func RequestIDMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set(RequestIDHeader, requestID)

			ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
			ctx = logger.WithRequestID(ctx, requestID)
			ctx = audit.WithRequestContext(ctx, requestID, clientIP(r), r.UserAgent())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TracingMiddleware opens a server span per request, continuing any propagated trace.
func TracingMiddleware() Middleware {
	propagator := otel.GetTextMapPropagator()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracing.StartSpan(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()

			if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
				span.SetAttributes(attribute.String("request.id", reqID))
			}

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			span.SetName(routeOf(r))
			span.SetAttributes(attribute.Int("http.response.status_code", rec.status))
			if rec.status >= http.StatusInternalServerError {
				tracing.SetError(ctx, errors.New(http.StatusText(rec.status)))
			}
		})
	}
}

// MetricsMiddleware records Prometheus request metrics.
func MetricsMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			observeRequest(r.Method, routeOf(r), rec.status, time.Since(start))
		})
	}
}

// RateLimitMiddleware rejects requests once the limiter is exhausted.
func RateLimitMiddleware(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r) {
				w.Header().Set("Retry-After", "1")
				response.Write(w, response.WithData(
					response.TooManyRequests("rate limit exceeded, please try again later"), nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware logs request start and completion.
func LoggingMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			l := logger.FromContext(r.Context())

			l.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("HTTP request started")

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			event := l.Info()
			if rec.status >= http.StatusInternalServerError {
				event = l.Error()
			}
			event.
				Str("method", r.Method).
				Str("route", routeOf(r)).
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("HTTP request completed")
		})
	}
}

// TimeoutMiddleware bounds the request context unless it already has a deadline.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if _, ok := ctx.Deadline(); !ok && timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
