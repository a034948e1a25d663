package convert

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/avivbaron/urldefang/internal/cache"
	"github.com/avivbaron/urldefang/internal/metrics"
)

type brokenCache struct{ gets, sets int }

func (b *brokenCache) Get(ctx context.Context, key string, v any) (bool, error) {
	b.gets++
	return true, errors.New("decode failed")
}

func (b *brokenCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b.sets++
	return errors.New("down")
}

func (b *brokenCache) Delete(ctx context.Context, key string) error { return nil }

func newSvc(t *testing.T, maxLines int) *Service {
	t.Helper()
	mc := cache.NewMemoryWithClock(time.Minute, time.Now)
	t.Cleanup(mc.Close)
	return NewService(mc, time.Minute, maxLines, zerolog.Nop())
}

// TestService_Sanitize_CachesResult verifies that the second identical batch
// is served from cache.
// PASS: first call computed, second call Cached=true with identical results.
// FAIL: second call misses cache or results differ.
func TestService_Sanitize_CachesResult(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(t, 100)
	in := []string{"https://example.com/path", "", "  http://a.b.org "}

	res1, err := svc.Sanitize(ctx, in)
	if err != nil {
		t.Fatalf("sanitize1: %v", err)
	}
	if res1.Cached {
		t.Fatalf("first call should not be cached")
	}
	want := "[hXXps://example[.]com/path hXXp://a[.]b[.]org]"
	if fmt.Sprint(res1.Results) != want || res1.Count != 2 {
		t.Fatalf("got %v", res1.Results)
	}

	res2, err := svc.Sanitize(ctx, in)
	if err != nil {
		t.Fatalf("sanitize2: %v", err)
	}
	if !res2.Cached || fmt.Sprint(res2.Results) != want {
		t.Fatalf("second call: %+v", res2)
	}
}

// TestService_Unsanitize_Partition checks accepted/rejected lists and outcomes.
// PASS: partition matches, rejected keeps originals, reasons reported.
// FAIL: any mismatch.
func TestService_Unsanitize_Partition(t *testing.T) {
	svc := newSvc(t, 0)
	res, err := svc.Unsanitize(context.Background(), []string{
		"hXXps://example[.]com/path",
		"hXXp://not a domain",
		"ftp://example.com",
		"/nohost",
	})
	if err != nil {
		t.Fatalf("unsanitize: %v", err)
	}
	if fmt.Sprint(res.Accepted) != "[https://example.com/path ftp://example.com]" {
		t.Fatalf("accepted=%v", res.Accepted)
	}
	if fmt.Sprint(res.Rejected) != "[hXXp://not a domain /nohost]" {
		t.Fatalf("rejected=%v", res.Rejected)
	}
	if len(res.Outcomes) != 4 || res.Outcomes[1].Reason != "bad_domain" || res.Outcomes[3].Reason != "no_host" {
		t.Fatalf("outcomes=%+v", res.Outcomes)
	}
	if res.Outcomes[0].Reason != "" || !res.Outcomes[0].Accepted {
		t.Fatalf("first outcome=%+v", res.Outcomes[0])
	}
}

// TestService_Domains checks dedup and sorting.
// PASS: sorted unique second-level domains.
// FAIL: duplicates or wrong values.
func TestService_Domains(t *testing.T) {
	svc := newSvc(t, 100)
	res, err := svc.Domains(context.Background(), []string{"https://a.b.example.com/x", "EXAMPLE.COM", "localhost", "zeta.io"})
	if err != nil {
		t.Fatalf("domains: %v", err)
	}
	if fmt.Sprint(res.Domains) != "[example.com localhost zeta.io]" || res.Count != 3 {
		t.Fatalf("domains=%v", res.Domains)
	}
}

// TestService_LineCap ensures raw lines past the cap never reach the output.
// PASS: only lines within the cap converted; blank lines count towards it.
// FAIL: capped lines appear.
func TestService_LineCap(t *testing.T) {
	svc := newSvc(t, 3)
	res, err := svc.Sanitize(context.Background(), []string{"a.com", "", "b.com", "c.com", "d.com"})
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if fmt.Sprint(res.Results) != "[a[.]com b[.]com]" {
		t.Fatalf("results=%v", res.Results)
	}
	if svc.MaxLines() != 3 {
		t.Fatalf("max=%d", svc.MaxLines())
	}
}

// TestService_CacheErrorsIgnored makes sure a failing cache never fails a conversion.
// PASS: results computed despite get/set errors.
// FAIL: error returned or empty results.
func TestService_CacheErrorsIgnored(t *testing.T) {
	bc := &brokenCache{}
	svc := NewService(bc, time.Minute, 100, zerolog.Nop())
	res, err := svc.Domains(context.Background(), []string{"www.example.com"})
	if err != nil {
		t.Fatalf("domains: %v", err)
	}
	if res.Cached || len(res.Domains) != 1 || res.Domains[0] != "example.com" {
		t.Fatalf("res=%+v", res)
	}
	if bc.gets != 1 || bc.sets != 1 {
		t.Fatalf("gets=%d sets=%d", bc.gets, bc.sets)
	}
}

// TestService_CanceledContext returns ctx.Err before doing any work.
// PASS: context.Canceled returned.
// FAIL: nil error.
func TestService_CanceledContext(t *testing.T) {
	svc := newSvc(t, 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Unsanitize(ctx, []string{"a.com"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

// TestService_Metrics checks hit/miss and per-request line counters.
// PASS: one miss then one hit for the same batch; lines and rejections
// counted for both requests, the cached one included.
// FAIL: counters off.
func TestService_Metrics(t *testing.T) {
	m := metrics.Init(true)
	defer metrics.Init(false)
	svc := newSvc(t, 100)
	ctx := context.Background()
	in := []string{"localhost", "hXXp://ok[.]com"}
	_, _ = svc.Unsanitize(ctx, in)
	_, _ = svc.Unsanitize(ctx, in)
	if v := testutil.ToFloat64(m.CacheMisses.WithLabelValues(OpUnsanitize)); v != 1 {
		t.Fatalf("misses=%v", v)
	}
	if v := testutil.ToFloat64(m.CacheHits.WithLabelValues(OpUnsanitize)); v != 1 {
		t.Fatalf("hits=%v", v)
	}
	if v := testutil.ToFloat64(m.LinesRejected.WithLabelValues("bad_domain")); v != 2 {
		t.Fatalf("rejected=%v", v)
	}
	if v := testutil.ToFloat64(m.LinesProcessed.WithLabelValues(OpUnsanitize)); v != 4 {
		t.Fatalf("lines=%v", v)
	}

	_, _ = svc.Domains(ctx, in)
	_, _ = svc.Domains(ctx, in)
	if v := testutil.ToFloat64(m.LinesProcessed.WithLabelValues(OpDomains)); v != 4 {
		t.Fatalf("domain lines=%v", v)
	}
}

// TestCacheKey keeps line boundaries in the key.
// PASS: ["ab"] and ["a","b"] hash differently; same input hashes the same.
// FAIL: collision or instability.
func TestCacheKey(t *testing.T) {
	if cacheKey(OpSanitize, []string{"ab"}) == cacheKey(OpSanitize, []string{"a", "b"}) {
		t.Fatalf("line boundaries lost")
	}
	if cacheKey(OpSanitize, []string{"x"}) != cacheKey(OpSanitize, []string{"x"}) {
		t.Fatalf("unstable key")
	}
	if cacheKey(OpSanitize, []string{"x"}) == cacheKey(OpDomains, []string{"x"}) {
		t.Fatalf("ops share keys")
	}
}
