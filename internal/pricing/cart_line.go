package pricing

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNegativeCustomPrice is returned for a custom-priced line below zero.
var ErrNegativeCustomPrice = errors.New("pricing: custom price must not be negative")

// CartLine is one entry destined to become an order line. CustomPrice, when
// set, overrides every discount rule for the line.
type CartLine struct {
	ItemID       int64            `json:"item_id"`
	Quantity     int              `json:"quantity"`
	CustomPrice  *decimal.Decimal `json:"custom_price,omitempty"`
	ProductID    int64            `json:"product_id"`
	ProductTitle string           `json:"product_title"`
	DisplayOrder int              `json:"display_order"`
}

// LineTotals are the authoritative figures for one line.
type LineTotals struct {
	UnitPrice         decimal.Decimal  `json:"unit_price"`
	Extension         decimal.Decimal  `json:"extension"`
	OriginalPrice     decimal.Decimal  `json:"original_price"`
	Discount          decimal.Decimal  `json:"discount"`
	DiscountExtension decimal.Decimal  `json:"discount_extension"`
	Custom            bool             `json:"custom"`
	Enabled           bool             `json:"enabled"`
	Resolution        *PriceResolution `json:"resolution,omitempty"`
}

// CartLineCalculator prices cart lines.
type CartLineCalculator struct {
	prices *ItemPriceResolver
}

// NewCartLineCalculator builds a calculator on top of the item resolver.
func NewCartLineCalculator(prices *ItemPriceResolver) *CartLineCalculator {
	if prices == nil {
		prices = NewItemPriceResolver(nil)
	}
	return &CartLineCalculator{prices: prices}
}

// Compute prices the line in the region. item must be the snapshot of the
// line's item. The original price is always looked up, so a missing region
// price fails custom-priced lines too.
func (c *CartLineCalculator) Compute(line CartLine, item ItemPricing, regionID int64, sale *SaleWindow) (LineTotals, error) {
	if line.ItemID != item.ItemID {
		return LineTotals{}, fmt.Errorf("pricing: line for item %d given snapshot of item %d", line.ItemID, item.ItemID)
	}
	if line.Quantity < 0 {
		return LineTotals{}, ErrNegativeQuantity
	}

	regionPrice, err := item.RegionPrice(regionID)
	if err != nil {
		return LineTotals{}, err
	}

	totals := LineTotals{
		OriginalPrice: regionPrice.OriginalPrice,
		Enabled:       regionPrice.Enabled,
	}

	if line.CustomPrice != nil {
		if line.CustomPrice.IsNegative() {
			return LineTotals{}, ErrNegativeCustomPrice
		}
		totals.UnitPrice = *line.CustomPrice
		totals.Custom = true
	} else {
		resolved, err := c.prices.Resolve(item, regionID, line.Quantity, sale)
		if err != nil {
			return LineTotals{}, err
		}
		totals.UnitPrice = resolved.Price
		totals.Resolution = &resolved
	}

	qty := decimal.NewFromInt(int64(line.Quantity))
	totals.Extension = totals.UnitPrice.Mul(qty)
	totals.Discount = totals.OriginalPrice.Sub(totals.UnitPrice)
	totals.DiscountExtension = totals.Discount.Mul(qty)
	return totals, nil
}

// SameLine reports whether two lines collapse into one: same item and same
// custom price, where two absent custom prices are equal.
func SameLine(a, b CartLine) bool {
	if a.ItemID != b.ItemID {
		return false
	}
	switch {
	case a.CustomPrice == nil && b.CustomPrice == nil:
		return true
	case a.CustomPrice == nil || b.CustomPrice == nil:
		return false
	default:
		return a.CustomPrice.Equal(*b.CustomPrice)
	}
}

// MergeLines collapses mergeable lines, summing quantities. The result keeps
// the order in which each distinct line first appeared.
func MergeLines(lines []CartLine) []CartLine {
	merged := make([]CartLine, 0, len(lines))
	for _, line := range lines {
		idx := slices.IndexFunc(merged, func(existing CartLine) bool { return SameLine(existing, line) })
		if idx < 0 {
			merged = append(merged, line)
			continue
		}
		merged[idx].Quantity += line.Quantity
	}
	return merged
}

// CompareLines orders lines by product title, product id, item display order
// and item id, all ascending.
func CompareLines(a, b CartLine) int {
	if c := strings.Compare(a.ProductTitle, b.ProductTitle); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ProductID, b.ProductID); c != 0 {
		return c
	}
	if c := cmp.Compare(a.DisplayOrder, b.DisplayOrder); c != 0 {
		return c
	}
	return cmp.Compare(a.ItemID, b.ItemID)
}

// SortLines sorts lines in place for display.
func SortLines(lines []CartLine) {
	slices.SortStableFunc(lines, CompareLines)
}
