package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleWindow is a percentage discount bounded in time. A nil bound leaves
// that side open.
type SaleWindow struct {
	ID                 int64           `json:"id"`
	StartDate          *time.Time      `json:"start_date,omitempty"`
	EndDate            *time.Time      `json:"end_date,omitempty"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// Validate rejects percentages outside the open interval (0,1).
func (w SaleWindow) Validate() error {
	if !validFraction(w.DiscountPercentage) {
		return invalidTier(SourceSaleWindow, w.ID, "discount percentage %s outside (0,1)", w.DiscountPercentage)
	}
	return nil
}

// IsActive reports whether now falls inside the window, both bounds inclusive.
// now is compared as given; callers normalize it to UTC.
func (w SaleWindow) IsActive(now time.Time) bool {
	if w.StartDate != nil && now.Before(*w.StartDate) {
		return false
	}
	if w.EndDate != nil && now.After(*w.EndDate) {
		return false
	}
	return true
}

// Discount is the amount taken off price, rounded half-up to cents.
func (w SaleWindow) Discount(price decimal.Decimal) decimal.Decimal {
	return RoundMoney(price.Mul(w.DiscountPercentage))
}

// Apply returns price reduced by the window's percentage.
func (w SaleWindow) Apply(price decimal.Decimal) decimal.Decimal {
	return price.Sub(w.Discount(price))
}
