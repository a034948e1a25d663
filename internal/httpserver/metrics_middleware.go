package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avivbaron/urldefang/internal/logs"
	"github.com/avivbaron/urldefang/internal/metrics"
)

// knownPaths bounds the path label; anything else is reported as "other".
var knownPaths = map[string]bool{
	"/api/sanitize":   true,
	"/api/unsanitize": true,
	"/api/domains":    true,
	"/health":         true,
	"/ready":          true,
	"/version":        true,
	"/metrics":        true,
}

func pathLabel(p string) string {
	if knownPaths[p] {
		return p
	}
	return "other"
}

func mwMetrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// M is checked per request: the router may enable metrics after the chain is built
			if metrics.M == nil {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			rl := &logs.RespLogger{ResponseWriter: w, Status: 200}
			next.ServeHTTP(rl, r)
			labels := []string{r.Method, pathLabel(r.URL.Path), strconv.Itoa(rl.Status)}
			metrics.M.HTTPRequests.WithLabelValues(labels...).Inc()
			metrics.M.HTTPDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		})
	}
}
