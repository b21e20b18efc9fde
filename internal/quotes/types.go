package quotes

import (
	"time"

	"github.com/angelmondragon/catalog-pricing/internal/pricing"
	"github.com/shopspring/decimal"
)

// LineInput is one requested cart line.
type LineInput struct {
	ItemID      int64
	Quantity    int
	CustomPrice *decimal.Decimal
}

// CartQuoteInput captures a cart to price in one region. ShippingTypeID is
// optional; without it no surcharge is computed.
type CartQuoteInput struct {
	RegionID       int64
	ShippingTypeID *int64
	Lines          []LineInput
}

// QuotedLine is a merged cart line with its authoritative totals.
type QuotedLine struct {
	pricing.CartLine
	ItemTitle string `json:"item_title"`
	pricing.LineTotals
}

// CartQuote is the priced cart.
type CartQuote struct {
	RegionID         int64                  `json:"region_id"`
	Lines            []QuotedLine           `json:"lines"`
	OriginalSubtotal decimal.Decimal        `json:"original_subtotal"`
	DiscountTotal    decimal.Decimal        `json:"discount_total"`
	Subtotal         decimal.Decimal        `json:"subtotal"`
	Shipping         *pricing.ShippingQuote `json:"shipping,omitempty"`
	Total            decimal.Decimal        `json:"total"`
	QuotedAt         time.Time              `json:"quoted_at"`
}

// LineError describes why one line could not be priced.
type LineError struct {
	ItemID  int64  `json:"item_id"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
