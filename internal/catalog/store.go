package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/catalog-pricing/internal/pricing"
	"github.com/angelmondragon/catalog-pricing/pkg/db"
	"gorm.io/gorm"
)

// Store is the catalog Reader used by the service. Reads made through
// ReadSnapshot always come from the database and refresh the snapshot cache;
// the cache only answers reads made outside a snapshot, such as the region
// listing.
type Store struct {
	client   *db.Client
	repo     *Repository
	cache    *SnapshotCache
	snapshot bool
}

// NewStore wires the repository over client. cache may be nil.
func NewStore(client *db.Client, cache *SnapshotCache) *Store {
	return &Store{client: client, repo: NewRepository(client.DB()), cache: cache}
}

// ReadSnapshot runs fn inside a read-only transaction so every load of one
// quote sees the same data.
func (s *Store) ReadSnapshot(ctx context.Context, fn func(Reader) error) error {
	if s.client == nil {
		return fn(&Store{repo: s.repo, cache: s.cache, snapshot: true})
	}
	return s.client.WithReadTx(ctx, func(tx *gorm.DB) error {
		return fn(&Store{repo: s.repo.WithTx(tx), cache: s.cache, snapshot: true})
	})
}

func (s *Store) ListRegions(ctx context.Context) ([]pricing.Region, error) {
	if !s.snapshot {
		return s.cache.Regions(ctx, s.repo.ListRegions)
	}
	regions, err := s.repo.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.PutRegions(ctx, regions)
	return regions, nil
}

func (s *Store) LoadItem(ctx context.Context, itemID int64) (pricing.ItemPricing, error) {
	if !s.snapshot {
		return s.cache.Item(ctx, itemID, s.repo.LoadItem)
	}
	item, err := s.repo.LoadItem(ctx, itemID)
	if errors.Is(err, ErrItemNotFound) {
		s.cache.InvalidateItem(ctx, itemID)
	}
	if err != nil {
		return pricing.ItemPricing{}, err
	}
	s.cache.PutItem(ctx, item)
	return item, nil
}

// ActiveSale is never cached; the answer depends on the clock.
func (s *Store) ActiveSale(ctx context.Context, itemID int64, now time.Time) (*pricing.SaleWindow, error) {
	return s.repo.ActiveSale(ctx, itemID, now)
}

func (s *Store) ShippingRates(ctx context.Context, shippingTypeID int64) ([]pricing.ShippingRateTier, error) {
	return s.repo.ShippingRates(ctx, shippingTypeID)
}

func (s *Store) ShippingTypeExists(ctx context.Context, shippingTypeID int64) (bool, error) {
	return s.repo.ShippingTypeExists(ctx, shippingTypeID)
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Ping(ctx)
}
