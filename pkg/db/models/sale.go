package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a time-bounded percentage discount on an item.
type Sale struct {
	ID                 int64           `gorm:"column:id;primaryKey"`
	ItemID             int64           `gorm:"column:item_id;not null;index"`
	StartDate          *time.Time      `gorm:"column:start_date"`
	EndDate            *time.Time      `gorm:"column:end_date"`
	DiscountPercentage decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,4);not null"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
}
