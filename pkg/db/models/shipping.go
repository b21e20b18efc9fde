package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingType is a delivery method with subtotal-tiered surcharges.
type ShippingType struct {
	ID        int64          `gorm:"column:id;primaryKey"`
	Title     string         `gorm:"column:title;not null"`
	Rates     []ShippingRate `gorm:"foreignKey:ShippingTypeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}

// ShippingRate carries either a flat Amount or a Percentage of the subtotal.
type ShippingRate struct {
	ID             int64               `gorm:"column:id;primaryKey"`
	ShippingTypeID int64               `gorm:"column:shipping_type_id;not null;index:idx_shipping_rates_type_region"`
	RegionID       int64               `gorm:"column:region_id;not null;index:idx_shipping_rates_type_region"`
	Threshold      decimal.Decimal     `gorm:"column:threshold;type:numeric(12,2);not null;default:0"`
	Amount         decimal.NullDecimal `gorm:"column:amount;type:numeric(12,2)"`
	Percentage     decimal.NullDecimal `gorm:"column:percentage;type:numeric(5,4)"`
}
