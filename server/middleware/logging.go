package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/kbukum/ssehub/logger"
	"github.com/kbukum/ssehub/observability"
)

var probePaths = []string{"/health", "/alive", "/ready"}

// RequestLogger returns middleware that logs every request with method,
// path, status code and duration, and records the duration in metrics.
// Probe paths are not logged. metrics may be nil.
func RequestLogger(log *logger.Logger, metrics *observability.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newResponseRecorder(w)
			next.ServeHTTP(rec, r)
			duration := time.Since(start)

			metrics.RecordRequest(r.Context(), r.Method, routeLabel(r.URL.Path), rec.status, duration)
			if slices.Contains(probePaths, r.URL.Path) {
				return
			}

			fields := logger.Fields(
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"bytes", rec.bytes,
				logger.FieldDuration, duration.Milliseconds(),
			)
			if id := r.Header.Get(RequestIDHeader); id != "" {
				fields[logger.FieldRequestID] = id
			}
			logByStatus(log, fields, rec.status)
		})
	}
}

// routeLabel keeps metric cardinality bounded by collapsing client IDs.
func routeLabel(path string) string {
	if rest, ok := strings.CutPrefix(path, "/api/clients/"); ok && rest != "" {
		return "/api/clients/:id"
	}
	return path
}

// logByStatus logs request fields at the level matching the status code.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
