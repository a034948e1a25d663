package httpserver

import (
	"net"
	"net/http"
	"time"

	"github.com/avivbaron/urldefang/internal/logs"
	"github.com/rs/zerolog"
)

type Middleware func(http.Handler) http.Handler

// mwChain applies middleware in declaration order: the first one listed is the outermost.
func mwChain(mwFuncs ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(mwFuncs) - 1; i >= 0; i-- {
			next = mwFuncs[i](next)
		}
		return next
	}
}

// mwRequestID attaches a request identifier to the context and response headers.
func mwRequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := requestID(r.Header.Get("X-Request-ID"))
			r = r.WithContext(withReqID(r.Context(), id))
			w.Header().Set("X-Request-ID", id)
			next.ServeHTTP(w, r)
		})
	}
}

// mwAccessLog records request and response details to the provided logger.
func mwAccessLog(logger zerolog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rl := &logs.RespLogger{ResponseWriter: w, Status: 200}
			next.ServeHTTP(rl, r)

			clientIP, _, _ := net.SplitHostPort(r.RemoteAddr)
			if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
				clientIP = xf
			}

			ev := logger.Info()
			if rl.Status >= http.StatusInternalServerError {
				ev = logger.Error()
			}
			ev.Str("id", reqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rl.Status).
				Int("bytes", rl.Bytes).
				Str("ip", clientIP).
				Dur("dur", time.Since(start)).
				Msg("http")
		})
	}
}
