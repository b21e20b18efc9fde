package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a sellable variant of a product.
type Item struct {
	ID                int64              `gorm:"column:id;primaryKey"`
	ProductID         int64              `gorm:"column:product_id;not null;index"`
	Title             string             `gorm:"column:title;not null"`
	DisplayOrder      int                `gorm:"column:display_order;not null;default:0"`
	RegionPrices      []ItemRegionPrice  `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	QuantityDiscounts []QuantityDiscount `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	Sales             []Sale             `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// ItemRegionPrice is an item's price row in one region.
type ItemRegionPrice struct {
	ID            int64           `gorm:"column:id;primaryKey"`
	ItemID        int64           `gorm:"column:item_id;not null;uniqueIndex:idx_item_region_prices_item_region"`
	RegionID      int64           `gorm:"column:region_id;not null;uniqueIndex:idx_item_region_prices_item_region"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	OriginalPrice decimal.Decimal `gorm:"column:original_price;type:numeric(12,2);not null"`
	Enabled       bool            `gorm:"column:enabled;not null"`
}
