package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/catalog-pricing/internal/pricing"
	"github.com/angelmondragon/catalog-pricing/pkg/db/models"
	"gorm.io/gorm"
)

// ErrItemNotFound is returned when the requested item does not exist.
var ErrItemNotFound = errors.New("catalog: item not found")

// Reader is the read surface the quote service prices against.
type Reader interface {
	ListRegions(ctx context.Context) ([]pricing.Region, error)
	LoadItem(ctx context.Context, itemID int64) (pricing.ItemPricing, error)
	ActiveSale(ctx context.Context, itemID int64, now time.Time) (*pricing.SaleWindow, error)
	ShippingRates(ctx context.Context, shippingTypeID int64) ([]pricing.ShippingRateTier, error)
	ShippingTypeExists(ctx context.Context, shippingTypeID int64) (bool, error)
}

// Repository loads catalog reference data with GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListRegions returns every region ordered by id.
func (r *Repository) ListRegions(ctx context.Context) ([]pricing.Region, error) {
	var rows []models.Region
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}
	regions := make([]pricing.Region, 0, len(rows))
	for _, row := range rows {
		regions = append(regions, toRegion(row))
	}
	return regions, nil
}

// LoadItem assembles the pricing snapshot of one item: its product, region
// prices and quantity breaks with their region bindings.
func (r *Repository) LoadItem(ctx context.Context, itemID int64) (pricing.ItemPricing, error) {
	tx := r.db.WithContext(ctx)

	var item models.Item
	err := tx.
		Preload("RegionPrices").
		Preload("QuantityDiscounts", func(db *gorm.DB) *gorm.DB { return db.Order("quantity ASC, id ASC") }).
		Preload("QuantityDiscounts.Regions").
		First(&item, "id = ?", itemID).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pricing.ItemPricing{}, fmt.Errorf("%w: %d", ErrItemNotFound, itemID)
	}
	if err != nil {
		return pricing.ItemPricing{}, fmt.Errorf("loading item %d: %w", itemID, err)
	}

	var product models.Product
	if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
		return pricing.ItemPricing{}, fmt.Errorf("loading product %d of item %d: %w", item.ProductID, itemID, err)
	}

	return toItemPricing(item, product), nil
}

// ActiveSale returns the lowest-id sale window of the item active at now, or
// nil. Windows are filtered in Go so inclusive bounds behave the same on
// every driver.
func (r *Repository) ActiveSale(ctx context.Context, itemID int64, now time.Time) (*pricing.SaleWindow, error) {
	var rows []models.Sale
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("loading sales of item %d: %w", itemID, err)
	}
	now = now.UTC()
	for _, row := range rows {
		window := toSaleWindow(row)
		if window.IsActive(now) {
			return &window, nil
		}
	}
	return nil, nil
}

// ShippingRates returns every rate of the shipping type ordered by id.
func (r *Repository) ShippingRates(ctx context.Context, shippingTypeID int64) ([]pricing.ShippingRateTier, error) {
	var rows []models.ShippingRate
	if err := r.db.WithContext(ctx).
		Where("shipping_type_id = ?", shippingTypeID).
		Order("id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("loading shipping rates of type %d: %w", shippingTypeID, err)
	}
	rates := make([]pricing.ShippingRateTier, 0, len(rows))
	for _, row := range rows {
		rates = append(rates, toShippingRate(row))
	}
	return rates, nil
}

// ShippingTypeExists reports whether the shipping type is defined.
func (r *Repository) ShippingTypeExists(ctx context.Context, shippingTypeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShippingType{}).
		Where("id = ?", shippingTypeID).
		Count(&count).
		Error; err != nil {
		return false, fmt.Errorf("checking shipping type %d: %w", shippingTypeID, err)
	}
	return count > 0, nil
}
