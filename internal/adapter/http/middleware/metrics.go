package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Metrics records latency per route pattern and counts 4xx/5xx responses.
func Metrics(m *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := routePattern(r)
			m.APILatency.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if status >= http.StatusBadRequest {
				m.APIErrorsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
			}
		})
	}
}

// routePattern keeps label cardinality bounded by using the matched chi pattern.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
