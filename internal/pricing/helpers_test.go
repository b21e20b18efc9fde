package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func moneyPtr(value string) *decimal.Decimal {
	d := money(value)
	return &d
}

func requireMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, money(want).Equal(got), "expected %s, got %s", want, got.String())
}

func fixedClock(ts string) func() time.Time {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return parsed }
}

func datePtr(value string) *time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &parsed
}

const (
	regionUS int64 = 1
	regionEU int64 = 2
)

// widget has a base price of 10.00 (original 12.00) in the US and two
// quantity breaks: 5+ at 9.00 and 10+ at 8.00.
func widget() ItemPricing {
	return ItemPricing{
		ItemID:       100,
		Title:        "Widget",
		DisplayOrder: 1,
		ProductID:    10,
		ProductTitle: "Widgets",
		RegionPrices: map[int64]ItemRegionPrice{
			regionUS: {RegionID: regionUS, Price: money("10.00"), OriginalPrice: money("12.00"), Enabled: true},
			regionEU: {RegionID: regionEU, Price: money("11.00"), OriginalPrice: money("11.00"), Enabled: false},
		},
		QuantityTiers: []QuantityDiscountTier{
			{ID: 2, Quantity: 10, RegionPrices: map[int64]decimal.Decimal{regionUS: money("8.00")}},
			{ID: 1, Quantity: 5, RegionPrices: map[int64]decimal.Decimal{regionUS: money("9.00")}},
		},
	}
}
