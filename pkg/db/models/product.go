package models

import "time"

// Product groups sellable items for display.
type Product struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Items     []Item    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
