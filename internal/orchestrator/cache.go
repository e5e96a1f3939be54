package orchestrator

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trustview/internal/logging"
	"trustview/internal/types"
)

// DefaultCacheTTL is how long a list result is served without refetching.
const DefaultCacheTTL = 2 * time.Second

type cacheEntry struct {
	intents []types.Intent
	expires time.Time
}

// CachedSource caches ListIntents per wallet for a fixed TTL. Concurrent
// misses for the same wallet share one upstream call. GetIntent always goes
// to the inner Source.
type CachedSource struct {
	inner Source
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
	gen     uint64 // bumped by Invalidate
	group   singleflight.Group
}

// NewCachedSource wraps inner. A non-positive ttl means DefaultCacheTTL.
func NewCachedSource(inner Source, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// TTL returns the configured lifetime.
func (c *CachedSource) TTL() time.Duration {
	return c.ttl
}

// ListIntents returns the cached list for wallet or fetches it. The shared
// fetch outlives any single caller's cancellation; each caller stops waiting
// when its own ctx is done.
func (c *CachedSource) ListIntents(ctx context.Context, wallet string) ([]types.Intent, error) {
	if intents, ok := c.lookup(wallet); ok {
		logging.Get(logging.CategoryCache).Debug("hit wallet=%q", wallet)
		return intents, nil
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	// Calls made after an Invalidate never join a flight started before it.
	key := strconv.FormatUint(gen, 10) + "|" + wallet
	ch := c.group.DoChan(key, func() (interface{}, error) {
		// Another caller may have filled the entry while we waited.
		if intents, ok := c.lookup(wallet); ok {
			return intents, nil
		}
		fetchCtx, cancel := detach(ctx)
		defer cancel()
		intents, err := c.inner.ListIntents(fetchCtx, wallet)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gen == gen {
			c.entries[wallet] = cacheEntry{intents: intents, expires: c.now().Add(c.ttl)}
		}
		c.mu.Unlock()
		return intents, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		logging.Get(logging.CategoryCache).Debug("miss wallet=%q shared=%v", wallet, res.Shared)
		return res.Val.([]types.Intent), nil
	}
}

// detach keeps ctx's values and deadline but not its cancellation.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	out := context.WithoutCancel(ctx)
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(out, deadline)
	}
	return context.WithCancel(out)
}

// GetIntent is never cached.
func (c *CachedSource) GetIntent(ctx context.Context, intentID, wallet string) (*types.IntentDetail, error) {
	return c.inner.GetIntent(ctx, intentID, wallet)
}

// Health delegates when the inner source supports it.
func (c *CachedSource) Health(ctx context.Context) (*HealthStatus, error) {
	if hc, ok := c.inner.(HealthChecker); ok {
		return hc.Health(ctx)
	}
	return &HealthStatus{Status: "ok"}, nil
}

// Invalidate drops every cached list. A fetch already in flight still
// answers its callers but does not repopulate the cache.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]cacheEntry)
	c.gen++
	c.mu.Unlock()
	logging.Get(logging.CategoryCache).Debug("invalidated %d entries", n)
}

func (c *CachedSource) lookup(wallet string) ([]types.Intent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[wallet]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, wallet)
		return nil, false
	}
	return e.intents, true
}
