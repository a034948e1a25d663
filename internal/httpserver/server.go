package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	"github.com/avivbaron/urldefang/internal/cache"
	"github.com/avivbaron/urldefang/internal/metrics"
	"github.com/avivbaron/urldefang/internal/ratelimit"
)

type Deps struct {
	Cache        cache.Cache
	Converter    Converter
	MaxLineLen   int
	MaxBodyBytes int64
}

type Server struct {
	srv    *http.Server
	logger zerolog.Logger
	deps   Deps
}

// NewRouter registers every route; New wraps it in the middleware chain.
func NewRouter(deps Deps, metricsEnabled bool) *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// service metadata endpoints
	router.HandlerFunc(http.MethodGet, "/health", HandleHealth())
	router.HandlerFunc(http.MethodGet, "/ready", HandleReady(deps))
	router.HandlerFunc(http.MethodGet, "/version", HandleVersion())

	if metricsEnabled {
		metrics.Init(true)
		router.Handler(http.MethodGet, "/metrics", metrics.Handler())
	}

	if deps.Converter != nil {
		h := NewHandler(deps.Converter, deps.MaxLineLen, deps.MaxBodyBytes)
		router.HandlerFunc(http.MethodPost, "/api/sanitize", h.handleSanitize)
		router.HandlerFunc(http.MethodPost, "/api/unsanitize", h.handleUnsanitize)
		router.HandlerFunc(http.MethodPost, "/api/domains", h.handleDomains)
	}
	return router
}

func New(addr string, logger zerolog.Logger, limiter *ratelimit.Limiter, deps Deps, metricsEnabled bool) *Server {
	router := NewRouter(deps, metricsEnabled)

	chain := mwChain(mwRequestID(), mwRateLimit(limiter), mwMetrics(), mwAccessLog(logger))

	s := &http.Server{
		Addr:         addr,
		Handler:      chain(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	return &Server{srv: s, logger: logger, deps: deps}
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
