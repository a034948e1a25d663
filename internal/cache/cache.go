package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/avivbaron/urldefang/internal/config"
)

type Cache interface {
	// Get unmarshals the cached value for key into v.
	// Returns (hit=false, nil) if key is absent or expired.
	Get(ctx context.Context, key string, v any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by backends that depend on a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewFromConfig selects a backend based on cfg.CacheBackend.
func NewFromConfig(cfg config.Config) (Cache, func(), error) {
	switch cfg.CacheBackend {
	case "memory":
		mc := NewMemory(MemoryOptions{
			TTL:         cfg.CacheTTL,
			MaxItems:    cfg.CacheMaxItems,
			SweepMin:    cfg.CacheSweepMin,
			SweepMax:    cfg.CacheSweepMax,
			AutoJanitor: true, // production default; tests can turn this off
		})
		return mc, func() { mc.Close() }, nil
	case "redis":
		rc := NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		closer := func() { _ = rc.Close() }
		return rc, closer, nil
	case "none":
		return Noop{}, func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown cache backend: %s", cfg.CacheBackend)
	}
}

// Noop never stores anything; every Get is a miss.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Delete(context.Context, string) error { return nil }
