package analysiscache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"

	"github.com/yanqian/outfit-advisor/internal/domain/analyzer"
)

// Cache keeps product analyses in process memory.
type Cache struct {
	cache  *cache.Cache[analyzer.ProductAnalysis]
	client *ristretto.Cache
	ttl    time.Duration
	logger *slog.Logger
}

var _ analyzer.Cache = (*Cache)(nil)

// New builds a cache holding up to maxItems analyses for ttl each.
func New(maxItems int64, ttl time.Duration, logger *slog.Logger) (*Cache, error) {
	if maxItems <= 0 {
		maxItems = 1000
	}
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxItems * 10,
		MaxCost:            maxItems,
		BufferItems:        64,
		IgnoreInternalCost: true, // cost counts entries, not bytes
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}
	return &Cache{
		cache:  cache.New[analyzer.ProductAnalysis](ristretto_store.NewRistretto(client)),
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "analysiscache"),
	}, nil
}

// Get returns the cached analysis for key. Any store error is a miss.
func (c *Cache) Get(ctx context.Context, key string) (analyzer.ProductAnalysis, bool) {
	value, err := c.cache.Get(ctx, key)
	if err != nil {
		return analyzer.ProductAnalysis{}, false
	}
	return value, true
}

// Set stores value under key. Each entry costs one slot.
func (c *Cache) Set(ctx context.Context, key string, value analyzer.ProductAnalysis) {
	if err := c.cache.Set(ctx, key, value, store.WithCost(1), store.WithExpiration(c.ttl)); err != nil {
		c.logger.Warn("cache set failed", "key", key, "error", err)
	}
}

// Close releases the underlying cache.
func (c *Cache) Close() {
	c.client.Close()
}
