package quotes

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/catalog-pricing/internal/catalog"
	"github.com/angelmondragon/catalog-pricing/internal/pricing"
	"github.com/shopspring/decimal"
)

const (
	regionUS int64 = 1
	regionEU int64 = 2
	ground   int64 = 1
)

type fakeCatalog struct {
	regions   []pricing.Region
	items     map[int64]pricing.ItemPricing
	sales     map[int64][]pricing.SaleWindow
	rates     map[int64][]pricing.ShippingRateTier
	loadErr   error
	snapshots int
}

func (f *fakeCatalog) ReadSnapshot(_ context.Context, fn func(catalog.Reader) error) error {
	f.snapshots++
	return fn(f)
}

func (f *fakeCatalog) ListRegions(context.Context) ([]pricing.Region, error) {
	return f.regions, nil
}

func (f *fakeCatalog) LoadItem(_ context.Context, itemID int64) (pricing.ItemPricing, error) {
	if f.loadErr != nil {
		return pricing.ItemPricing{}, f.loadErr
	}
	item, ok := f.items[itemID]
	if !ok {
		return pricing.ItemPricing{}, catalog.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeCatalog) ActiveSale(_ context.Context, itemID int64, now time.Time) (*pricing.SaleWindow, error) {
	for _, sale := range f.sales[itemID] {
		if sale.IsActive(now) {
			window := sale
			return &window, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) ShippingRates(_ context.Context, shippingTypeID int64) ([]pricing.ShippingRateTier, error) {
	return f.rates[shippingTypeID], nil
}

func (f *fakeCatalog) ShippingTypeExists(_ context.Context, shippingTypeID int64) (bool, error) {
	_, ok := f.rates[shippingTypeID]
	return ok, nil
}

var errStorageDown = errors.New("connection refused")

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func moneyPtr(value string) *decimal.Decimal {
	d := money(value)
	return &d
}

func idPtr(id int64) *int64 {
	return &id
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

// newFakeCatalog holds two products: "Widgets" (item 100 with quantity breaks
// and a 25% sale, item 101 priced only in the US) and "Anchors" (item 200,
// disabled in the EU). Ground shipping is a flat 10.00, or 5% from 50.00.
func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		regions: []pricing.Region{{ID: regionEU, Title: "Europe"}, {ID: regionUS, Title: "United States"}},
		items: map[int64]pricing.ItemPricing{
			100: {
				ItemID: 100, Title: "Blue widget", DisplayOrder: 2, ProductID: 10, ProductTitle: "Widgets",
				RegionPrices: map[int64]pricing.ItemRegionPrice{
					regionUS: {RegionID: regionUS, Price: money("10.00"), OriginalPrice: money("12.00"), Enabled: true},
					regionEU: {RegionID: regionEU, Price: money("11.00"), OriginalPrice: money("11.00"), Enabled: true},
				},
				QuantityTiers: []pricing.QuantityDiscountTier{
					{ID: 1, Quantity: 5, RegionPrices: map[int64]decimal.Decimal{regionUS: money("9.00")}},
					{ID: 2, Quantity: 10, RegionPrices: map[int64]decimal.Decimal{regionUS: money("8.00")}},
				},
			},
			101: {
				ItemID: 101, Title: "Green widget", DisplayOrder: 1, ProductID: 10, ProductTitle: "Widgets",
				RegionPrices: map[int64]pricing.ItemRegionPrice{
					regionUS: {RegionID: regionUS, Price: money("3.00"), OriginalPrice: money("3.00"), Enabled: true},
				},
			},
			200: {
				ItemID: 200, Title: "Anchor", DisplayOrder: 1, ProductID: 20, ProductTitle: "Anchors",
				RegionPrices: map[int64]pricing.ItemRegionPrice{
					regionUS: {RegionID: regionUS, Price: money("20.00"), OriginalPrice: money("20.00"), Enabled: true},
					regionEU: {RegionID: regionEU, Price: money("21.00"), OriginalPrice: money("21.00"), Enabled: false},
				},
			},
		},
		sales: map[int64][]pricing.SaleWindow{
			100: {{ID: 1, DiscountPercentage: money("0.25")}},
		},
		rates: map[int64][]pricing.ShippingRateTier{
			ground: {
				{ID: 1, ShippingTypeID: ground, RegionID: regionUS, Threshold: money("0"), Amount: moneyPtr("10")},
				{ID: 2, ShippingTypeID: ground, RegionID: regionUS, Threshold: money("50"), Percentage: moneyPtr("0.05")},
			},
		},
	}
}
