package cache

import (
	"fmt"
	"fxconvert/internal/domain"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
)

// RistrettoCrossRateCache memoises target/source factors per table version.
type RistrettoCrossRateCache struct {
	cache *ristretto.Cache
}

func NewCrossRateCache(maxItems int64) (*RistrettoCrossRateCache, error) {
	if maxItems <= 0 {
		maxItems = 1024
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create cross rate cache failed: %w", err)
	}
	return &RistrettoCrossRateCache{cache: c}, nil
}

func (c *RistrettoCrossRateCache) Get(version uuid.UUID, pair domain.RatePair) (float64, bool) {
	if v, ok := c.cache.Get(toKey(version, pair)); ok {
		factor, ok := v.(float64)
		return factor, ok
	}
	return 0, false
}

func (c *RistrettoCrossRateCache) Set(version uuid.UUID, pair domain.RatePair, factor float64) {
	c.cache.Set(toKey(version, pair), factor, 1)
}

func (c *RistrettoCrossRateCache) Close() { c.cache.Close() }

func toKey(version uuid.UUID, p domain.RatePair) string {
	return version.String() + ":" + p.Base + ":" + p.Quote
}
