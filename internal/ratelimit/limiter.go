package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter keeps one token bucket per client key.
type Limiter struct {
	rate      rate.Limit
	burst     int
	buckets   sync.Map // key -> *bucket
	now       func() time.Time
	bucketTTL time.Duration // idle eviction
	stopCh    chan struct{}
	once      sync.Once
}

type bucket struct {
	lim *rate.Limiter

	mu       sync.Mutex
	lastSeen time.Time
}

// New creates a limiter with the given per-second rate and burst.
func New(ratePerSec, burst int) *Limiter {
	if ratePerSec <= 0 {
		ratePerSec = 1
	}
	if burst < ratePerSec {
		burst = ratePerSec
	}
	l := &Limiter{
		rate:      rate.Limit(ratePerSec),
		burst:     burst,
		now:       time.Now,
		bucketTTL: 10 * time.Minute,
		stopCh:    make(chan struct{}),
	}
	go l.janitor()
	return l
}

// NewWithClock is for tests to inject a fake clock.
func NewWithClock(ratePerSec, burst int, now func() time.Time) *Limiter {
	l := New(ratePerSec, burst)
	if now != nil {
		l.now = now
	}
	return l
}

func (l *Limiter) Close() { l.once.Do(func() { close(l.stopCh) }) }

// Allow reports whether a request identified by key is permitted now.
// If not allowed, it returns a suggested Retry-After duration.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	if key == "" {
		key = "_anon"
	}
	now := l.now()
	bAny, ok := l.buckets.Load(key)
	if !ok {
		bAny, _ = l.buckets.LoadOrStore(key, &bucket{lim: l.newBucketLimiter(now), lastSeen: now})
	}
	b := bAny.(*bucket)

	b.mu.Lock()
	b.lastSeen = now
	b.mu.Unlock()

	r := b.lim.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	delay := r.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	// give the token back; the caller is told to retry instead of waiting
	r.CancelAt(now)
	return false, delay
}

// newBucketLimiter returns a full bucket whose refill clock starts at now.
func (l *Limiter) newBucketLimiter(now time.Time) *rate.Limiter {
	lim := rate.NewLimiter(l.rate, l.burst)
	lim.SetLimitAt(now, l.rate)
	return lim
}

func (l *Limiter) sweep(now time.Time) {
	l.buckets.Range(func(k, v any) bool {
		b := v.(*bucket)
		b.mu.Lock()
		idle := now.Sub(b.lastSeen)
		b.mu.Unlock()
		if idle > l.bucketTTL {
			l.buckets.Delete(k)
		}
		return true
	})
}

func (l *Limiter) janitor() {
	t := time.NewTicker(l.bucketTTL / 2)
	defer t.Stop()
	for {
		select {
		case <-l.stopCh:
			return
		case <-t.C:
			l.sweep(l.now())
		}
	}
}
