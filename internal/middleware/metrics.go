package middleware

import (
	"net/http"
	"time"

	"flowershop/internal/metrics"
)

// Metrics records request counts and latency by route pattern. It must
// wrap the ServeMux directly so the matched pattern is visible afterwards.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(r.Method, route, rw.statusCode, time.Since(start))
	})
}
