package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuantityDiscount is a quantity break on an item. Prices live per region in
// QuantityDiscountRegion rows.
type QuantityDiscount struct {
	ID        int64                    `gorm:"column:id;primaryKey"`
	ItemID    int64                    `gorm:"column:item_id;not null;uniqueIndex:idx_quantity_discounts_item_quantity"`
	Quantity  int                      `gorm:"column:quantity;not null;uniqueIndex:idx_quantity_discounts_item_quantity"`
	Regions   []QuantityDiscountRegion `gorm:"foreignKey:QuantityDiscountID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time                `gorm:"column:created_at;autoCreateTime"`
}

// QuantityDiscountRegion binds a quantity break to a region price.
type QuantityDiscountRegion struct {
	ID                 int64           `gorm:"column:id;primaryKey"`
	QuantityDiscountID int64           `gorm:"column:quantity_discount_id;not null;uniqueIndex:idx_quantity_discount_regions_tier_region"`
	RegionID           int64           `gorm:"column:region_id;not null;uniqueIndex:idx_quantity_discount_regions_tier_region"`
	Price              decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}
