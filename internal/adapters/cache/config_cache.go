package cache

import (
	"fmt"
	"time"

	"usdtcalc/internal/domain"

	"github.com/dgraph-io/ristretto"
)

const snapshotKey = "pricing:snapshot"

type RistrettoConfigCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewConfigCache creates a cache for the current pricing snapshot. A zero ttl
// keeps the snapshot until it is invalidated.
func NewConfigCache(maxItems int64, ttl time.Duration) (*RistrettoConfigCache, error) {
	if maxItems <= 0 {
		maxItems = 16
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,

		// Cost counts snapshots, not bytes.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create config cache failed: %w", err)
	}
	return &RistrettoConfigCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoConfigCache) Get() (domain.ConfigSnapshot, bool) {
	if v, ok := c.cache.Get(snapshotKey); ok {
		snap, ok := v.(domain.ConfigSnapshot)
		return snap, ok
	}
	return domain.ConfigSnapshot{}, false
}

func (c *RistrettoConfigCache) Set(snap domain.ConfigSnapshot) {
	if c.ttl > 0 {
		c.cache.SetWithTTL(snapshotKey, snap, 1, c.ttl)
		return
	}
	c.cache.Set(snapshotKey, snap, 1)
}

// Invalidate drops the snapshot. Sets still sitting in ristretto's buffers are
// flushed first so none of them can resurrect a stale value afterwards.
func (c *RistrettoConfigCache) Invalidate() {
	c.cache.Del(snapshotKey)
	c.cache.Wait()
	c.cache.Del(snapshotKey)
}

func (c *RistrettoConfigCache) Close() { c.cache.Close() }
