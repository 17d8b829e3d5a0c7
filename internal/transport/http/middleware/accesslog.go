package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/metrics"
	appCtx "github.com/baechuer/real-time-ressys/services/listing-service/internal/pkg/context"
)

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *statusWriter) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// AccessLog logs one line per request and records HTTP metrics under the
// matched chi route pattern.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		start := time.Now()

		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		metrics.RecordHTTPRequest(r.Method, routePattern(r), sw.code(), elapsed)

		l := logger.WithRequestID(appCtx.RequestID(r.Context()))
		l.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", sw.code()).
			Int("bytes", sw.bytes).
			Dur("latency", elapsed).
			Str("remote_ip", r.RemoteAddr).
			Msg("http_request")
	})
}

// routePattern keeps metric label cardinality bounded.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
