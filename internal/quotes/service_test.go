package quotes

import (
	"context"
	"testing"

	"github.com/angelmondragon/catalog-pricing/internal/pricing"
	"github.com/angelmondragon/catalog-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalog-pricing/pkg/errors"
	"github.com/angelmondragon/catalog-pricing/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, cat Catalog, policy enums.ShippingTierPolicy) Service {
	t.Helper()
	svc, err := NewService(cat, Options{
		ShippingTierPolicy: policy,
		MaxLineQuantity:    1000,
		Now:                fixedNow,
		Metrics:            metrics.NewPricingMetrics(prometheus.NewRegistry()),
	})
	require.NoError(t, err)
	return svc
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) *pkgerrors.Error {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected coded error, got %v", err)
	require.Equal(t, code, typed.Code(), typed.Error())
	return typed
}

func requireMoney(t *testing.T, want string, got interface{ String() string }) {
	t.Helper()
	require.True(t, money(want).Equal(money(got.String())), "expected %s, got %s", want, got.String())
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	_, err := NewService(nil, Options{})
	assert.Error(t, err)

	_, err = NewService(newFakeCatalog(), Options{ShippingTierPolicy: "cheapest"})
	assert.Error(t, err)
}

func TestQuoteCartMergesSortsAndTotals(t *testing.T) {
	cat := newFakeCatalog()
	svc := newTestService(t, cat, enums.ShippingTierPolicyLegacy)

	quote, err := svc.QuoteCart(context.Background(), CartQuoteInput{
		RegionID:       regionUS,
		ShippingTypeID: idPtr(ground),
		Lines: []LineInput{
			{ItemID: 100, Quantity: 6},
			{ItemID: 200, Quantity: 1},
			{ItemID: 101, Quantity: 2},
			{ItemID: 100, Quantity: 4},
			{ItemID: 100, Quantity: 20, CustomPrice: moneyPtr("5.00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cat.snapshots)

	require.Len(t, quote.Lines, 4)
	// "Anchors" sorts before "Widgets"; within Widgets display order 1 (item 101) leads.
	assert.Equal(t, int64(200), quote.Lines[0].ItemID)
	assert.Equal(t, int64(101), quote.Lines[1].ItemID)
	assert.Equal(t, int64(100), quote.Lines[2].ItemID)
	assert.Equal(t, int64(100), quote.Lines[3].ItemID)

	merged := quote.Lines[2]
	assert.Equal(t, 10, merged.Quantity)
	assert.Nil(t, merged.CustomPrice)
	// Tier 8.00 then 25% sale.
	requireMoney(t, "6.00", merged.UnitPrice)
	requireMoney(t, "60.00", merged.Extension)
	requireMoney(t, "60.00", merged.DiscountExtension)
	assert.Equal(t, "Blue widget", merged.ItemTitle)

	custom := quote.Lines[3]
	assert.True(t, custom.Custom)
	requireMoney(t, "5.00", custom.UnitPrice)
	requireMoney(t, "100.00", custom.Extension)

	// 20.00 + 6.00 + 60.00 + 100.00
	requireMoney(t, "186.00", quote.Subtotal)
	// 20.00 + 6.00 + 120.00 + 240.00
	requireMoney(t, "386.00", quote.OriginalSubtotal)
	requireMoney(t, "200.00", quote.DiscountTotal)

	require.NotNil(t, quote.Shipping)
	requireMoney(t, "10.00", quote.Shipping.Surcharge)
	requireMoney(t, "196.00", quote.Total)
	assert.Equal(t, fixedNow(), quote.QuotedAt)
}

func TestQuoteCartHighestThresholdShipping(t *testing.T) {
	svc := newTestService(t, newFakeCatalog(), enums.ShippingTierPolicyHighestThreshold)

	quote, err := svc.QuoteCart(context.Background(), CartQuoteInput{
		RegionID:       regionUS,
		ShippingTypeID: idPtr(ground),
		Lines:          []LineInput{{ItemID: 200, Quantity: 5}},
	})
	require.NoError(t, err)
	requireMoney(t, "100.00", quote.Subtotal)
	requireMoney(t, "5.00", quote.Shipping.Surcharge)
	requireMoney(t, "105.00", quote.Total)
}

func TestQuoteCartWithoutShipping(t *testing.T) {
	svc := newTestService(t, newFakeCatalog(), "")

	quote, err := svc.QuoteCart(context.Background(), CartQuoteInput{
		RegionID: regionUS,
		Lines:    []LineInput{{ItemID: 101, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Nil(t, quote.Shipping)
	requireMoney(t, "9.00", quote.Total)
}

func TestQuoteCartReportsEveryFailedLine(t *testing.T) {
	svc := newTestService(t, newFakeCatalog(), "")

	_, err := svc.QuoteCart(context.Background(), CartQuoteInput{
		RegionID: regionEU,
		Lines: []LineInput{
			{ItemID: 100, Quantity: 1},
			{ItemID: 101, Quantity: 1},
			{ItemID: 200, Quantity: 1},
			{ItemID: 999, Quantity: 1},
		},
	})
	typed := requireCode(t, err, pkgerrors.CodeNotFound)

	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	lines, ok := details["lines"].([]LineError)
	require.True(t, ok)
	require.Len(t, lines, 3)
	assert.Equal(t, LineError{ItemID: 101, Code: string(pkgerrors.CodePriceNotFound), Message: "price line"}, lines[0])
	assert.Equal(t, int64(200), lines[1].ItemID)
	assert.Equal(t, string(pkgerrors.CodeValidation), lines[1].Code)
	assert.Equal(t, int64(999), lines[2].ItemID)
	assert.Equal(t, string(pkgerrors.CodeNotFound), lines[2].Code)
}

func TestQuoteCartPriceNotFound(t *testing.T) {
	svc := newTestService(t, newFakeCatalog(), "")

	_, err := svc.QuoteCart(context.Background(), CartQuoteInput{
		RegionID: regionEU,
		Lines:    []LineInput{{ItemID: 101, Quantity: 1, CustomPrice: moneyPtr("1.00")}},
	})
	requireCode(t, err, pkgerrors.CodePriceNotFound)
}

func TestQuoteCartValidation(t *testing.T) {
	svc := newTestService(t, newFakeCatalog(), "")
	ctx := context.Background()

	tests := []CartQuoteInput{
		{RegionID: 0, Lines: []LineInput{{ItemID: 100, Quantity: 1}}},
		{RegionID: regionUS},
		{RegionID: regionUS, Lines: []LineInput{{ItemID: 100, Quantity: -1}}},
		{RegionID: regionUS, Lines: []LineInput{{ItemID: 100, Quantity: 1001}}},
		{RegionID: regionUS, Lines: []LineInput{{ItemID: 0, Quantity: 1}}},
		{RegionID: regionUS, Lines: []LineInput{{ItemID: 100, Quantity: 1, CustomPrice: moneyPtr("-1")}}},
		{RegionID: regionUS, ShippingTypeID: idPtr(0), Lines: []LineInput{{ItemID: 100, Quantity: 1}}},
	}
	for _, input := range tests {
		_, err := svc.QuoteCart(ctx, input)
		requireCode(t, err, pkgerrors.CodeValidation)
	}
}

func TestQuoteCartCapsMergedQuantity(t *testing.T) {
	svc := newTestService(t, newFakeCatalog(), "")
	ctx := context.Background()

	_, err := svc.QuoteCart(ctx, CartQuoteInput{RegionID: regionUS, Lines: []LineInput{
		{ItemID: 101, Quantity: 1000},
		{ItemID: 101, Quantity: 1000},
		{ItemID: 101, Quantity: 1000},
	}})
	typed := requireCode(t, err, pkgerrors.CodeValidation)
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"item 101: merged quantity 3000 exceeds 1000"}, details["problems"])

	// Lines with different custom prices stay separate and are capped one by one.
	quote, err := svc.QuoteCart(ctx, CartQuoteInput{RegionID: regionUS, Lines: []LineInput{
		{ItemID: 101, Quantity: 600},
		{ItemID: 101, Quantity: 600, CustomPrice: moneyPtr("2.00")},
	}})
	require.NoError(t, err)
	assert.Len(t, quote.Lines, 2)
}

func TestQuoteCartUnknownRegionAndShippingType(t *testing.T) {
	svc := newTestService(t, newFakeCatalog(), "")
	ctx := context.Background()

	_, err := svc.QuoteCart(ctx, CartQuoteInput{RegionID: 9, Lines: []LineInput{{ItemID: 100, Quantity: 1}}})
	requireCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.QuoteCart(ctx, CartQuoteInput{RegionID: regionUS, ShippingTypeID: idPtr(42), Lines: []LineInput{{ItemID: 100, Quantity: 1}}})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestQuoteCartStorageFailure(t *testing.T) {
	cat := newFakeCatalog()
	cat.loadErr = errStorageDown
	svc := newTestService(t, cat, "")

	_, err := svc.QuoteCart(context.Background(), CartQuoteInput{RegionID: regionUS, Lines: []LineInput{{ItemID: 100, Quantity: 1}}})
	typed := requireCode(t, err, pkgerrors.CodeDependency)
	assert.ErrorIs(t, typed, errStorageDown)
}

func TestQuoteCartInvalidTierData(t *testing.T) {
	cat := newFakeCatalog()
	cat.sales[101] = []pricing.SaleWindow{{ID: 9, DiscountPercentage: money("1.5")}}
	svc := newTestService(t, cat, "")

	_, err := svc.QuoteCart(context.Background(), CartQuoteInput{
		RegionID: regionUS,
		Lines:    []LineInput{{ItemID: 101, Quantity: 1}, {ItemID: 999, Quantity: 1}},
	})
	requireCode(t, err, pkgerrors.CodeDataIntegrity)
}

func TestItemPrice(t *testing.T) {
	svc := newTestService(t, newFakeCatalog(), "")
	ctx := context.Background()

	price, err := svc.ItemPrice(ctx, 100, regionUS, 12)
	require.NoError(t, err)
	requireMoney(t, "6.00", price.Price)
	requireMoney(t, "6.00", price.Savings)
	requireMoney(t, "50", price.PercentOff)
	require.NotNil(t, price.TierQuantity)
	assert.Equal(t, 10, *price.TierQuantity)

	disabled, err := svc.ItemPrice(ctx, 200, regionEU, 1)
	require.NoError(t, err)
	assert.False(t, disabled.Enabled)

	_, err = svc.ItemPrice(ctx, 101, regionEU, 1)
	requireCode(t, err, pkgerrors.CodePriceNotFound)

	_, err = svc.ItemPrice(ctx, 999, regionUS, 1)
	requireCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.ItemPrice(ctx, 100, regionUS, -1)
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestShippingQuote(t *testing.T) {
	svc := newTestService(t, newFakeCatalog(), enums.ShippingTierPolicyLegacy)
	ctx := context.Background()

	quote, err := svc.ShippingQuote(ctx, ground, regionUS, money("100"))
	require.NoError(t, err)
	requireMoney(t, "10.00", quote.Surcharge)

	quote, err = svc.ShippingQuote(ctx, ground, regionEU, money("100"))
	require.NoError(t, err)
	requireMoney(t, "0", quote.Surcharge)
	assert.Nil(t, quote.Tier)

	_, err = svc.ShippingQuote(ctx, ground, regionUS, money("-1"))
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.ShippingQuote(ctx, 42, regionUS, money("1"))
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestRegions(t *testing.T) {
	svc := newTestService(t, newFakeCatalog(), "")

	regions, err := svc.Regions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []pricing.Region{{ID: regionUS, Title: "United States"}, {ID: regionEU, Title: "Europe"}}, regions)
}
