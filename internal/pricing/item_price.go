package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRegionPrice is an item's price row for one region. Enabled gates
// availability only and never changes the computed price.
type ItemRegionPrice struct {
	RegionID      int64           `json:"region_id"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Enabled       bool            `json:"enabled"`
}

// QuantityDiscountTier is a quantity break with per-region price overrides.
// A region missing from RegionPrices gets nothing from this tier.
type QuantityDiscountTier struct {
	ID           int64                     `json:"id"`
	Quantity     int                       `json:"quantity"`
	RegionPrices map[int64]decimal.Decimal `json:"region_prices"`
}

// ItemPricing is the read-only snapshot of everything needed to price one item.
type ItemPricing struct {
	ItemID        int64                     `json:"item_id"`
	Title         string                    `json:"title"`
	DisplayOrder  int                       `json:"display_order"`
	ProductID     int64                     `json:"product_id"`
	ProductTitle  string                    `json:"product_title"`
	RegionPrices  map[int64]ItemRegionPrice `json:"region_prices"`
	QuantityTiers []QuantityDiscountTier    `json:"quantity_tiers"`
}

// RegionPrice returns the price row for the region or a PriceNotFoundError.
func (p ItemPricing) RegionPrice(regionID int64) (ItemRegionPrice, error) {
	price, ok := p.RegionPrices[regionID]
	if !ok {
		return ItemRegionPrice{}, &PriceNotFoundError{ItemID: p.ItemID, RegionID: regionID}
	}
	return price, nil
}

// QuantityTable builds the quantity tier table for one region.
func (p ItemPricing) QuantityTable(regionID int64) (*TierTable[Quantity, decimal.Decimal], error) {
	tiers := make([]Tier[Quantity, decimal.Decimal], 0, len(p.QuantityTiers))
	for _, tier := range p.QuantityTiers {
		price, ok := tier.RegionPrices[regionID]
		if !ok {
			continue
		}
		if price.IsNegative() {
			return nil, invalidTier(SourceQuantityTier, p.ItemID, "tier %d has negative price %s", tier.ID, price)
		}
		tiers = append(tiers, Tier[Quantity, decimal.Decimal]{Threshold: Quantity(tier.Quantity), Value: price})
	}
	table, err := NewTierTable(tiers)
	if err != nil {
		return nil, invalidTier(SourceQuantityTier, p.ItemID, "%s", err.Error())
	}
	return table, nil
}

// PriceResolution is the outcome of pricing one item in one region.
type PriceResolution struct {
	ItemID        int64           `json:"item_id"`
	RegionID      int64           `json:"region_id"`
	Quantity      int             `json:"quantity"`
	BasePrice     decimal.Decimal `json:"base_price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	TierQuantity  *int            `json:"tier_quantity,omitempty"`
	SaleDiscount  decimal.Decimal `json:"sale_discount"`
	SaleApplied   bool            `json:"sale_applied"`
	Price         decimal.Decimal `json:"price"`
	Enabled       bool            `json:"enabled"`
}

// DisplayPrice adds savings figures for rendering next to the price.
type DisplayPrice struct {
	PriceResolution
	Savings    decimal.Decimal `json:"savings"`
	PercentOff decimal.Decimal `json:"percent_off"`
}

// ItemPriceResolver prices an item in a region at a quantity.
type ItemPriceResolver struct {
	now func() time.Time
}

// NewItemPriceResolver builds a resolver. now defaults to time.Now and is
// always normalized to UTC before a sale window is checked.
func NewItemPriceResolver(now func() time.Time) *ItemPriceResolver {
	if now == nil {
		now = time.Now
	}
	return &ItemPriceResolver{now: func() time.Time { return now().UTC() }}
}

// Now returns the resolver's current UTC time.
func (r *ItemPriceResolver) Now() time.Time {
	return r.now()
}

// Resolve applies the quantity tier, then the sale window, to the region's
// base price. Tier prices replace the base price; the sale reduces the
// tiered price.
func (r *ItemPriceResolver) Resolve(item ItemPricing, regionID int64, quantity int, sale *SaleWindow) (PriceResolution, error) {
	if quantity < 0 {
		return PriceResolution{}, ErrNegativeQuantity
	}
	regionPrice, err := item.RegionPrice(regionID)
	if err != nil {
		return PriceResolution{}, err
	}
	if sale != nil {
		if err := sale.Validate(); err != nil {
			return PriceResolution{}, err
		}
	}

	table, err := item.QuantityTable(regionID)
	if err != nil {
		return PriceResolution{}, err
	}

	result := PriceResolution{
		ItemID:        item.ItemID,
		RegionID:      regionID,
		Quantity:      quantity,
		BasePrice:     regionPrice.Price,
		OriginalPrice: regionPrice.OriginalPrice,
		SaleDiscount:  zero,
		Price:         regionPrice.Price,
		Enabled:       regionPrice.Enabled,
	}

	if tier, ok := table.Highest(Quantity(quantity)); ok {
		threshold := int(tier.Threshold)
		result.TierQuantity = &threshold
		result.Price = tier.Value
	}

	if sale != nil && sale.IsActive(r.now()) {
		result.SaleDiscount = sale.Discount(result.Price)
		result.Price = result.Price.Sub(result.SaleDiscount)
		result.SaleApplied = true
	}

	return result, nil
}

// Display resolves the price and derives savings against the original price.
// PercentOff is a whole percentage.
func (r *ItemPriceResolver) Display(item ItemPricing, regionID int64, quantity int, sale *SaleWindow) (DisplayPrice, error) {
	resolved, err := r.Resolve(item, regionID, quantity, sale)
	if err != nil {
		return DisplayPrice{}, err
	}
	savings := resolved.OriginalPrice.Sub(resolved.Price)
	percentOff := zero
	if resolved.OriginalPrice.IsPositive() && savings.IsPositive() {
		percentOff = savings.Div(resolved.OriginalPrice).Mul(decimal.NewFromInt(100)).Round(0)
	}
	return DisplayPrice{
		PriceResolution: resolved,
		Savings:         savings,
		PercentOff:      percentOff,
	}, nil
}
