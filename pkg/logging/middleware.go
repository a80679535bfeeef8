package logging

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestObserver is told about every finished request, e.g. to record metrics.
type RequestObserver func(r *http.Request, status int, duration time.Duration)

// RequestIDMiddleware adds a request ID to each HTTP request and logs request/response
func RequestIDMiddleware(next http.Handler) http.Handler {
	return Middleware(nil)(next)
}

// Middleware is RequestIDMiddleware with an optional observer called after
// each request completes.
func Middleware(observe RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := WithRequestID(r.Context(), requestID)
			r = r.WithContext(ctx)
			w.Header().Set("X-Request-ID", requestID)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			start := time.Now()
			DebugContext(ctx, "request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr,
			)

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			if observe != nil {
				observe(r, wrapped.statusCode, duration)
			}

			switch {
			case wrapped.statusCode >= 500:
				ErrorContext(ctx, "request failed",
					"method", r.Method,
					"path", r.URL.Path,
					"status", wrapped.statusCode,
					"durationMs", duration.Milliseconds(),
				)
			case wrapped.statusCode >= 400:
				WarnContext(ctx, "request rejected",
					"method", r.Method,
					"path", r.URL.Path,
					"status", wrapped.statusCode,
					"durationMs", duration.Milliseconds(),
				)
			default:
				InfoContext(ctx, "request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"status", wrapped.statusCode,
					"durationMs", duration.Milliseconds(),
				)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	wrote      bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wrote {
		rw.statusCode = code
		rw.wrote = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wrote = true
	return rw.ResponseWriter.Write(b)
}

// Flush implements http.Flusher for SSE support
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
