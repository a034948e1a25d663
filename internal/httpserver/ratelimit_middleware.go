package httpserver

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avivbaron/urldefang/internal/metrics"
	"github.com/avivbaron/urldefang/internal/ratelimit"
)

type rlErr struct {
	Error        string `json:"error"`
	RetryAfterMs int64  `json:"retry_after_ms"`
}

// probes are never throttled so orchestrators keep seeing the real state.
var unlimitedPaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/metrics": true,
}

func mwRateLimit(lim *ratelimit.Limiter) Middleware {
	return func(next http.Handler) http.Handler {
		if lim == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if unlimitedPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			allowed, retry := lim.Allow(clientKey(r))
			if !allowed {
				metrics.IncRateLimited(pathLabel(r.URL.Path))
				if retry <= 0 {
					retry = time.Second
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds()+0.999)))
				writeJSON(w, http.StatusTooManyRequests, rlErr{Error: "rate limit exceeded", RetryAfterMs: retry.Milliseconds()})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if k := strings.TrimSpace(r.Header.Get("X-API-Key")); k != "" {
		return "k:" + k
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		// take the first IP in the list
		first, _, _ := strings.Cut(xf, ",")
		return "ip:" + strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}
