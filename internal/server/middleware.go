package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"couriertrack/internal/infrastructure/metrics"
)

// Observability records request metrics and an access log line per request.
func Observability(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			// route pattern keeps label cardinality bounded
			path := routePattern(r)
			elapsed := time.Since(start)
			status := strconv.Itoa(ww.Status())

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, path, status).Observe(elapsed.Seconds())

			logger.Info("http request",
				zap.String("traceId", chimw.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", elapsed),
			)
		})
	}
}

const unmatchedRoute = "unmatched"

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedRoute
}
