package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/avivbaron/urldefang/internal/metrics"
	"github.com/avivbaron/urldefang/internal/ratelimit"
)

// TestRateLimit_Metrics increments the rate_limit_blocks_total counter when a request is blocked.
// PASS: counter for this path == 1 after a blocked call.
// FAIL: counter remains 0.
func TestRateLimit_Metrics(t *testing.T) {
	metrics.Init(true)
	defer metrics.Init(false)
	lim := ratelimit.New(1, 1)
	defer lim.Close()

	h := mwRateLimit(lim)(okHandler())

	r := httptest.NewRequest(http.MethodPost, "/api/domains", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r) // consumes burst
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, r) // blocked

	c := testutil.ToFloat64(metrics.M.RateLimitBlocks.WithLabelValues("/api/domains"))
	if c < 1 {
		t.Fatalf("expected rate_limit_blocks_total >= 1, got %v", c)
	}
}

// TestMetricsMiddleware_PathLabel folds unknown paths into "other".
// PASS: known path counted under itself, unknown under "other".
// FAIL: raw unknown path used as a label.
func TestMetricsMiddleware_PathLabel(t *testing.T) {
	metrics.Init(true)
	defer metrics.Init(false)
	h := mwMetrics()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/random/xyz", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/version", nil))

	if v := testutil.ToFloat64(metrics.M.HTTPRequests.WithLabelValues("GET", "other", "404")); v != 1 {
		t.Fatalf("other=%v", v)
	}
	if v := testutil.ToFloat64(metrics.M.HTTPRequests.WithLabelValues("GET", "/version", "404")); v != 1 {
		t.Fatalf("version=%v", v)
	}
}
