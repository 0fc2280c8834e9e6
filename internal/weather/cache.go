package weather

import (
	"context"
	"fmt"
	"time"

	"assistant/internal/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachedFetcher keeps successful snapshots for a while, keyed by coordinates.
// Failures are never cached.
type CachedFetcher struct {
	next  Fetcher
	cache *expirable.LRU[string, *domain.WeatherSnapshot]
}

// NewCachedFetcher wraps next with a bounded TTL cache
func NewCachedFetcher(next Fetcher, size int, ttl time.Duration) *CachedFetcher {
	if size <= 0 {
		size = 64
	}
	return &CachedFetcher{
		next:  next,
		cache: expirable.NewLRU[string, *domain.WeatherSnapshot](size, nil, ttl),
	}
}

// Forecast returns a cached snapshot or fetches a fresh one
func (c *CachedFetcher) Forecast(ctx context.Context, lat, lon float64) (*domain.WeatherSnapshot, error) {
	key := cacheKey(lat, lon)
	if snapshot, ok := c.cache.Get(key); ok {
		return snapshot, nil
	}

	snapshot, err := c.next.Forecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, snapshot)
	return snapshot, nil
}

// size returns the number of cached snapshots
func (c *CachedFetcher) size() int {
	return c.cache.Len()
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}
