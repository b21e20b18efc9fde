package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/angelmondragon/catalog-pricing/internal/pricing"
	"github.com/angelmondragon/catalog-pricing/pkg/logger"
	"github.com/angelmondragon/catalog-pricing/pkg/metrics"
	pkgredis "github.com/angelmondragon/catalog-pricing/pkg/redis"
)

// SnapshotStore is the key/value surface the snapshot cache needs.
// *redis.Client satisfies it.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	ItemSnapshotKey(itemID int64) string
	RegionsSnapshotKey() string
}

// SnapshotCache keeps serialized item snapshots and the region list in an
// external store. Store failures are logged and fall through to the loader.
type SnapshotCache struct {
	store   SnapshotStore
	ttl     time.Duration
	logg    *logger.Logger
	metrics *metrics.PricingMetrics
}

// NewSnapshotCache returns nil when store is nil, which disables caching.
func NewSnapshotCache(store SnapshotStore, ttl time.Duration, logg *logger.Logger, m *metrics.PricingMetrics) *SnapshotCache {
	if store == nil {
		return nil
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &SnapshotCache{store: store, ttl: ttl, logg: logg, metrics: m}
}

// Item returns the cached snapshot of itemID or loads and caches it.
func (c *SnapshotCache) Item(ctx context.Context, itemID int64, load func(context.Context, int64) (pricing.ItemPricing, error)) (pricing.ItemPricing, error) {
	if c == nil {
		return load(ctx, itemID)
	}
	key := c.store.ItemSnapshotKey(itemID)

	var snapshot pricing.ItemPricing
	if c.read(ctx, key, &snapshot) {
		return snapshot, nil
	}

	snapshot, err := load(ctx, itemID)
	if err != nil {
		return pricing.ItemPricing{}, err
	}
	c.write(ctx, key, snapshot)
	return snapshot, nil
}

// Regions returns the cached region list or loads and caches it.
func (c *SnapshotCache) Regions(ctx context.Context, load func(context.Context) ([]pricing.Region, error)) ([]pricing.Region, error) {
	if c == nil {
		return load(ctx)
	}
	key := c.store.RegionsSnapshotKey()

	var regions []pricing.Region
	if c.read(ctx, key, &regions) {
		return regions, nil
	}

	regions, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.write(ctx, key, regions)
	return regions, nil
}

// PutItem replaces the cached snapshot of an item with a freshly loaded one.
func (c *SnapshotCache) PutItem(ctx context.Context, item pricing.ItemPricing) {
	if c == nil {
		return
	}
	c.write(ctx, c.store.ItemSnapshotKey(item.ItemID), item)
}

// PutRegions replaces the cached region list.
func (c *SnapshotCache) PutRegions(ctx context.Context, regions []pricing.Region) {
	if c == nil {
		return
	}
	c.write(ctx, c.store.RegionsSnapshotKey(), regions)
}

// InvalidateItem drops the cached snapshot of itemID. Failures are logged.
func (c *SnapshotCache) InvalidateItem(ctx context.Context, itemID int64) {
	if c == nil {
		return
	}
	key := c.store.ItemSnapshotKey(itemID)
	if err := c.store.Del(ctx, key); err != nil {
		c.logg.Warn(c.logg.WithFields(ctx, map[string]any{"key": key, "error": err.Error()}), "snapshot.cache_invalidate_failed")
	}
}

func (c *SnapshotCache) read(ctx context.Context, key string, dest any) bool {
	raw, err := c.store.Get(ctx, key)
	switch {
	case pkgredis.IsMiss(err):
		c.metrics.IncCache(metrics.CacheMiss)
		c.logg.Debug(c.logg.WithField(ctx, "key", key), "snapshot.cache_miss")
		return false
	case err != nil:
		c.metrics.IncCache(metrics.CacheError)
		c.logg.Warn(c.logg.WithFields(ctx, map[string]any{"key": key, "error": err.Error()}), "snapshot.cache_read_failed")
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.metrics.IncCache(metrics.CacheError)
		c.logg.Warn(c.logg.WithFields(ctx, map[string]any{"key": key, "error": err.Error()}), "snapshot.cache_decode_failed")
		return false
	}
	c.metrics.IncCache(metrics.CacheHit)
	return true
}

func (c *SnapshotCache) write(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err == nil {
		err = c.store.Set(ctx, key, string(payload), c.ttl)
	}
	if err != nil {
		c.logg.Warn(c.logg.WithFields(ctx, map[string]any{"key": key, "error": err.Error()}), "snapshot.cache_write_failed")
	}
}
