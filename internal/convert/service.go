package convert

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/zeebo/xxh3"

	"github.com/avivbaron/urldefang/internal/cache"
	"github.com/avivbaron/urldefang/internal/defang"
	"github.com/avivbaron/urldefang/internal/metrics"
	"github.com/avivbaron/urldefang/internal/models"
)

const (
	OpSanitize   = "sanitize"
	OpUnsanitize = "unsanitize"
	OpDomains    = "domains"
)

type Service struct {
	cache    cache.Cache
	ttl      time.Duration
	maxLines int
	logger   zerolog.Logger
}

// NewService wires the converters to a result cache. maxLines caps the raw
// lines looked at per call (0 => no cap).
func NewService(c cache.Cache, ttl time.Duration, maxLines int, logger zerolog.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	if maxLines < 0 {
		maxLines = 0
	}
	return &Service{cache: c, ttl: ttl, maxLines: maxLines, logger: logger}
}

func (s *Service) MaxLines() int { return s.maxLines }

func (s *Service) Sanitize(ctx context.Context, raw []string) (models.SanitizeResult, error) {
	var res models.SanitizeResult
	if err := ctx.Err(); err != nil {
		return res, err
	}
	lines := defang.CleanLines(raw, s.maxLines)
	metrics.AddLines(OpSanitize, len(lines))
	key := cacheKey(OpSanitize, lines)
	if s.lookup(ctx, OpSanitize, key, &res) {
		res.Cached = true
		return res, nil
	}

	start := time.Now()
	out := defang.SanitizeLines(lines)
	metrics.ObserveConvert(OpSanitize, start)

	res = models.SanitizeResult{
		Results:   out,
		Count:     len(out),
		Timestamp: time.Now().UTC(),
	}
	s.store(ctx, key, res)
	return res, nil
}

func (s *Service) Unsanitize(ctx context.Context, raw []string) (models.UnsanitizeResult, error) {
	var res models.UnsanitizeResult
	if err := ctx.Err(); err != nil {
		return res, err
	}
	lines := defang.CleanLines(raw, s.maxLines)
	metrics.AddLines(OpUnsanitize, len(lines))
	key := cacheKey(OpUnsanitize, lines)
	if s.lookup(ctx, OpUnsanitize, key, &res) {
		res.Cached = true
		countRejected(res.Outcomes)
		return res, nil
	}

	start := time.Now()
	outcomes := defang.UnsanitizeAll(lines)
	metrics.ObserveConvert(OpUnsanitize, start)

	res = models.UnsanitizeResult{
		Accepted:  []string{},
		Rejected:  []string{},
		Outcomes:  make([]models.Outcome, 0, len(outcomes)),
		Timestamp: time.Now().UTC(),
	}
	for _, o := range outcomes {
		res.Outcomes = append(res.Outcomes, models.Outcome{
			Input:    o.Input,
			Output:   o.URL,
			Accepted: o.Accepted,
			Reason:   o.Reason.String(),
		})
		if o.Accepted {
			res.Accepted = append(res.Accepted, o.URL)
			continue
		}
		res.Rejected = append(res.Rejected, o.URL)
	}
	countRejected(res.Outcomes)
	s.store(ctx, key, res)
	return res, nil
}

func (s *Service) Domains(ctx context.Context, raw []string) (models.DomainsResult, error) {
	var res models.DomainsResult
	if err := ctx.Err(); err != nil {
		return res, err
	}
	lines := defang.CleanLines(raw, s.maxLines)
	metrics.AddLines(OpDomains, len(lines))
	key := cacheKey(OpDomains, lines)
	if s.lookup(ctx, OpDomains, key, &res) {
		res.Cached = true
		return res, nil
	}

	start := time.Now()
	set := defang.ExtractDomains(lines)
	metrics.ObserveConvert(OpDomains, start)

	domains := set.Slice()
	res = models.DomainsResult{
		Domains:   domains,
		Count:     len(domains),
		Timestamp: time.Now().UTC(),
	}
	s.store(ctx, key, res)
	return res, nil
}

// countRejected counts rejections per served request, cached or not.
func countRejected(outcomes []models.Outcome) {
	for _, o := range outcomes {
		if !o.Accepted {
			metrics.IncRejected(o.Reason)
		}
	}
}

func (s *Service) lookup(ctx context.Context, op, key string, v any) bool {
	hit, err := s.cache.Get(ctx, key, v)
	if err != nil {
		s.logger.Debug().Err(err).Str("op", op).Msg("cache get failed")
		hit = false
	}
	if hit {
		metrics.IncHit(op)
		return true
	}
	metrics.IncMiss(op)
	return false
}

func (s *Service) store(ctx context.Context, key string, v any) {
	if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// cacheKey hashes the cleaned lines; the NUL separator keeps ["ab"] and
// ["a","b"] apart.
func cacheKey(op string, lines []string) string {
	h := xxh3.New()
	for _, l := range lines {
		_, _ = h.WriteString(l)
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%s:%d:%016x", op, len(lines), h.Sum64())
}
