package cache

import (
	"container/list"
	"context"
	"encoding/json"
	"sync"
	"time"
)

type MemoryOptions struct {
	TTL         time.Duration
	MaxItems    int           // 0 => unlimited
	SweepMin    time.Duration // clamp lower bound for janitor tick
	SweepMax    time.Duration // clamp upper bound for janitor tick
	AutoJanitor bool          // start the janitor goroutine
	Now         func() time.Time
}

type Memory struct {
	mu       sync.RWMutex
	m        map[string]*entry
	lru      *list.List // most-recent at Front(), least-recent at Back()
	maxItems int
	ttl      time.Duration
	sweepMin time.Duration
	sweepMax time.Duration
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
}

type entry struct {
	data []byte
	exp  time.Time     // zero => no expiry
	el   *list.Element // points into lru; nil if unlinked
}

func NewMemory(opt MemoryOptions) *Memory {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.SweepMin <= 0 {
		opt.SweepMin = time.Second
	}
	if opt.SweepMax < opt.SweepMin {
		opt.SweepMax = opt.SweepMin
	}
	mc := &Memory{
		m:        make(map[string]*entry),
		lru:      list.New(),
		maxItems: opt.MaxItems,
		ttl:      opt.TTL,
		sweepMin: opt.SweepMin,
		sweepMax: opt.SweepMax,
		now:      opt.Now,
		stop:     make(chan struct{}),
	}
	if opt.AutoJanitor {
		go mc.janitor()
	}
	return mc
}

// NewMemoryWithClock is a small helper for tests: TTL-only cache, no janitor.
func NewMemoryWithClock(ttl time.Duration, now func() time.Time) *Memory {
	return NewMemory(MemoryOptions{TTL: ttl, Now: now})
}

func (mc *Memory) Close() {
	mc.once.Do(func() { close(mc.stop) })
}

func (mc *Memory) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.m)
}

func (mc *Memory) Get(ctx context.Context, key string, v any) (bool, error) {
	mc.mu.RLock()
	e, ok := mc.m[key]
	if !ok {
		mc.mu.RUnlock()
		return false, nil
	} else if !e.exp.IsZero() && mc.now().After(e.exp) {
		mc.mu.RUnlock()
		_ = mc.Delete(ctx, key)
		return false, nil
	}

	// Copy bytes while under read lock, then unlock for JSON decode
	data := make([]byte, len(e.data))
	copy(data, e.data)
	mc.mu.RUnlock()

	mc.mu.Lock()
	if e.el != nil {
		mc.lru.MoveToFront(e.el)
	}
	mc.mu.Unlock()

	if err := json.Unmarshal(data, v); err != nil {
		return true, err
	}
	return true, nil
}

func (mc *Memory) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	var exp time.Time
	t := mc.ttl
	if ttl > 0 {
		t = ttl
	}
	if t > 0 {
		exp = mc.now().Add(t)
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()
	if e, ok := mc.m[key]; ok {
		e.data = b
		e.exp = exp
		if e.el != nil {
			mc.lru.MoveToFront(e.el)
		}
		return nil
	}

	el := mc.lru.PushFront(key)
	mc.m[key] = &entry{data: b, exp: exp, el: el}

	if mc.maxItems > 0 && mc.lru.Len() > mc.maxItems {
		mc.evictLRU()
	}
	return nil
}

func (mc *Memory) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.unlink(key)
	return nil
}

// unlink must be called with mu held.
func (mc *Memory) unlink(key string) {
	e, ok := mc.m[key]
	if !ok {
		return
	}
	if e.el != nil {
		mc.lru.Remove(e.el)
		e.el = nil
	}
	delete(mc.m, key)
}

func (mc *Memory) evictLRU() {
	for mc.maxItems > 0 && mc.lru.Len() > mc.maxItems {
		back := mc.lru.Back()
		if back == nil {
			return
		}
		mc.unlink(back.Value.(string))
	}
}

func (mc *Memory) sweepOnce() {
	now := mc.now()
	mc.mu.Lock()
	for k, e := range mc.m {
		if !e.exp.IsZero() && now.After(e.exp) {
			mc.unlink(k)
		}
	}
	mc.mu.Unlock()
}

// sweepInterval is TTL/2 clamped to [sweepMin, sweepMax]; without a TTL the
// janitor only wakes at sweepMax.
func (mc *Memory) sweepInterval() time.Duration {
	if mc.ttl <= 0 {
		return mc.sweepMax
	}
	iv := mc.ttl / 2
	if iv < mc.sweepMin {
		iv = mc.sweepMin
	}
	if iv > mc.sweepMax {
		iv = mc.sweepMax
	}
	return iv
}

func (mc *Memory) janitor() {
	t := time.NewTicker(mc.sweepInterval())
	defer t.Stop()

	for {
		select {
		case <-mc.stop:
			return
		case <-t.C:
			mc.sweepOnce()
		}
	}
}
