package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/avivbaron/urldefang/internal/buildinfo"
	"github.com/avivbaron/urldefang/internal/cache"
)

type health struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
	Error  string    `json:"error,omitempty"`
}

// HandleHealth is a liveness probe: the process is up.
func HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, health{Status: "ok", Time: time.Now().UTC()})
	}
}

// HandleReady reports 503 while a remote cache backend is unreachable.
func HandleReady(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p, ok := deps.Cache.(cache.Pinger); ok {
			ctx, cancel := context.WithTimeout(r.Context(), time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, health{Status: "unavailable", Time: time.Now().UTC(), Error: err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, health{Status: "ready", Time: time.Now().UTC()})
	}
}

func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, buildinfo.Get())
	}
}
