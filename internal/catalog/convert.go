package catalog

import (
	"time"

	"github.com/angelmondragon/catalog-pricing/internal/pricing"
	"github.com/angelmondragon/catalog-pricing/pkg/db/models"
	"github.com/shopspring/decimal"
)

func toRegion(row models.Region) pricing.Region {
	return pricing.Region{ID: row.ID, Title: row.Title}
}

func toItemPricing(item models.Item, product models.Product) pricing.ItemPricing {
	prices := make(map[int64]pricing.ItemRegionPrice, len(item.RegionPrices))
	for _, row := range item.RegionPrices {
		prices[row.RegionID] = pricing.ItemRegionPrice{
			RegionID:      row.RegionID,
			Price:         row.Price,
			OriginalPrice: row.OriginalPrice,
			Enabled:       row.Enabled,
		}
	}

	tiers := make([]pricing.QuantityDiscountTier, 0, len(item.QuantityDiscounts))
	for _, discount := range item.QuantityDiscounts {
		bindings := make(map[int64]decimal.Decimal, len(discount.Regions))
		for _, region := range discount.Regions {
			bindings[region.RegionID] = region.Price
		}
		tiers = append(tiers, pricing.QuantityDiscountTier{
			ID:           discount.ID,
			Quantity:     discount.Quantity,
			RegionPrices: bindings,
		})
	}

	return pricing.ItemPricing{
		ItemID:        item.ID,
		Title:         item.Title,
		DisplayOrder:  item.DisplayOrder,
		ProductID:     product.ID,
		ProductTitle:  product.Title,
		RegionPrices:  prices,
		QuantityTiers: tiers,
	}
}

func toSaleWindow(row models.Sale) pricing.SaleWindow {
	return pricing.SaleWindow{
		ID:                 row.ID,
		StartDate:          utcPtr(row.StartDate),
		EndDate:            utcPtr(row.EndDate),
		DiscountPercentage: row.DiscountPercentage,
	}
}

func toShippingRate(row models.ShippingRate) pricing.ShippingRateTier {
	return pricing.ShippingRateTier{
		ID:             row.ID,
		ShippingTypeID: row.ShippingTypeID,
		RegionID:       row.RegionID,
		Threshold:      row.Threshold,
		Amount:         nullable(row.Amount),
		Percentage:     nullable(row.Percentage),
	}
}

func nullable(value decimal.NullDecimal) *decimal.Decimal {
	if !value.Valid {
		return nil
	}
	d := value.Decimal
	return &d
}

func utcPtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	t := value.UTC()
	return &t
}
