package quotes

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/angelmondragon/catalog-pricing/internal/catalog"
	"github.com/angelmondragon/catalog-pricing/internal/pricing"
	"github.com/angelmondragon/catalog-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalog-pricing/pkg/errors"
	"github.com/angelmondragon/catalog-pricing/pkg/logger"
	"github.com/angelmondragon/catalog-pricing/pkg/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

const (
	opCartQuote     = "cart_quote"
	opItemPrice     = "item_price"
	opShippingQuote = "shipping_quote"
	opRegions       = "regions"

	defaultMaxLineQuantity = 10000
)

// Catalog is the reference data the service prices against.
type Catalog interface {
	catalog.Reader
	ReadSnapshot(ctx context.Context, fn func(catalog.Reader) error) error
}

// Service prices items, carts and shipping.
type Service interface {
	QuoteCart(ctx context.Context, input CartQuoteInput) (*CartQuote, error)
	ItemPrice(ctx context.Context, itemID, regionID int64, quantity int) (*pricing.DisplayPrice, error)
	ShippingQuote(ctx context.Context, shippingTypeID, regionID int64, subtotal decimal.Decimal) (*pricing.ShippingQuote, error)
	Regions(ctx context.Context) ([]pricing.Region, error)
}

// Options tune the service. Zero values fall back to defaults.
type Options struct {
	ShippingTierPolicy enums.ShippingTierPolicy
	MaxLineQuantity    int
	Now                func() time.Time
	Logger             *logger.Logger
	Metrics            *metrics.PricingMetrics
}

type service struct {
	catalog  Catalog
	prices   *pricing.ItemPriceResolver
	lines    *pricing.CartLineCalculator
	shipping *pricing.ShippingRateResolver
	maxQty   int
	logg     *logger.Logger
	metrics  *metrics.PricingMetrics
}

// NewService builds the quote service on top of the catalog.
func NewService(cat Catalog, opts Options) (Service, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog required")
	}
	shipping, err := pricing.NewShippingRateResolver(opts.ShippingTierPolicy)
	if err != nil {
		return nil, err
	}
	maxQty := opts.MaxLineQuantity
	if maxQty <= 0 {
		maxQty = defaultMaxLineQuantity
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	prices := pricing.NewItemPriceResolver(opts.Now)
	return &service{
		catalog:  cat,
		prices:   prices,
		lines:    pricing.NewCartLineCalculator(prices),
		shipping: shipping,
		maxQty:   maxQty,
		logg:     logg,
		metrics:  opts.Metrics,
	}, nil
}

// QuoteCart merges, prices and sorts the requested lines, then adds shipping.
// Every line that fails is reported together.
func (s *service) QuoteCart(ctx context.Context, input CartQuoteInput) (quote *CartQuote, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveQuote(opCartQuote, err, time.Since(start)) }()

	if err := s.validateCart(input); err != nil {
		return nil, err
	}
	merged := mergeInput(input.Lines)
	if err := s.validateMerged(merged); err != nil {
		return nil, err
	}

	ctx = s.logg.WithRegionID(ctx, input.RegionID)
	s.logg.Debug(s.logg.WithField(ctx, "lines", len(input.Lines)), "quote.start")

	now := s.prices.Now()
	err = s.catalog.ReadSnapshot(ctx, func(r catalog.Reader) error {
		if err := s.requireRegion(ctx, r, input.RegionID); err != nil {
			return err
		}
		if input.ShippingTypeID != nil {
			if err := s.requireShippingType(ctx, r, *input.ShippingTypeID); err != nil {
				return err
			}
		}

		lines, err := s.priceLines(ctx, r, input.RegionID, merged, now)
		if err != nil {
			return err
		}

		quote = &CartQuote{
			RegionID:         input.RegionID,
			Lines:            lines,
			OriginalSubtotal: decimal.Zero,
			DiscountTotal:    decimal.Zero,
			Subtotal:         decimal.Zero,
			QuotedAt:         now,
		}
		for _, line := range lines {
			qty := decimal.NewFromInt(int64(line.Quantity))
			quote.OriginalSubtotal = quote.OriginalSubtotal.Add(line.OriginalPrice.Mul(qty))
			quote.DiscountTotal = quote.DiscountTotal.Add(line.DiscountExtension)
			quote.Subtotal = quote.Subtotal.Add(line.Extension)
		}
		quote.Total = quote.Subtotal

		if input.ShippingTypeID != nil {
			rates, err := r.ShippingRates(ctx, *input.ShippingTypeID)
			if err != nil {
				return classify(err, "load shipping rates")
			}
			shipping, err := s.shipping.Resolve(rates, *input.ShippingTypeID, input.RegionID, quote.Subtotal)
			if err != nil {
				return classify(err, "resolve shipping surcharge")
			}
			quote.Shipping = &shipping
			quote.Total = quote.Total.Add(shipping.Surcharge)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"lines":    len(quote.Lines),
		"subtotal": quote.Subtotal.StringFixed(pricing.MoneyPlaces),
		"total":    quote.Total.StringFixed(pricing.MoneyPlaces),
	}), "quote.complete")
	return quote, nil
}

func (s *service) priceLines(ctx context.Context, r catalog.Reader, regionID int64, merged []pricing.CartLine, now time.Time) ([]QuotedLine, error) {
	var (
		failures   error
		lineErrors []LineError
		codes      []pkgerrors.Code
	)
	fail := func(itemID int64, err *pkgerrors.Error) {
		failures = multierr.Append(failures, fmt.Errorf("item %d: %w", itemID, err))
		lineErrors = append(lineErrors, LineError{ItemID: itemID, Code: string(err.Code()), Message: err.Message()})
		codes = append(codes, err.Code())
		s.logg.Warn(s.logg.WithFields(s.logg.WithItemID(ctx, itemID), map[string]any{
			"code":  string(err.Code()),
			"error": err.Error(),
		}), "quote.line_failed")
	}

	quoted := make([]QuotedLine, 0, len(merged))
	for _, line := range merged {
		item, err := r.LoadItem(ctx, line.ItemID)
		if err != nil {
			fail(line.ItemID, classify(err, "load item"))
			continue
		}
		line.ProductID = item.ProductID
		line.ProductTitle = item.ProductTitle
		line.DisplayOrder = item.DisplayOrder

		var sale *pricing.SaleWindow
		if line.CustomPrice == nil {
			sale, err = r.ActiveSale(ctx, line.ItemID, now)
			if err != nil {
				fail(line.ItemID, classify(err, "load sale"))
				continue
			}
		}

		totals, err := s.lines.Compute(line, item, regionID, sale)
		if err != nil {
			fail(line.ItemID, classify(err, "price line"))
			continue
		}
		if !totals.Enabled {
			fail(line.ItemID, pkgerrors.New(pkgerrors.CodeValidation, "item is not available in region"))
			continue
		}
		quoted = append(quoted, QuotedLine{CartLine: line, ItemTitle: item.Title, LineTotals: totals})
	}

	if failures != nil {
		count := len(multierr.Errors(failures))
		return nil, pkgerrors.Wrap(worst(codes), failures, fmt.Sprintf("%d cart line(s) could not be priced", count)).
			WithDetails(map[string]any{"lines": lineErrors})
	}

	sortQuotedLines(quoted)
	return quoted, nil
}

// ItemPrice returns the display price of one item in a region at a quantity.
func (s *service) ItemPrice(ctx context.Context, itemID, regionID int64, quantity int) (price *pricing.DisplayPrice, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveQuote(opItemPrice, err, time.Since(start)) }()

	if itemID <= 0 || regionID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_id and region_id are required")
	}
	if err := s.validateQuantity(quantity); err != nil {
		return nil, err
	}

	ctx = s.logg.WithItemID(s.logg.WithRegionID(ctx, regionID), itemID)
	err = s.catalog.ReadSnapshot(ctx, func(r catalog.Reader) error {
		if err := s.requireRegion(ctx, r, regionID); err != nil {
			return err
		}
		item, err := r.LoadItem(ctx, itemID)
		if err != nil {
			return classify(err, "load item")
		}
		sale, err := r.ActiveSale(ctx, itemID, s.prices.Now())
		if err != nil {
			return classify(err, "load sale")
		}
		display, err := s.prices.Display(item, regionID, quantity, sale)
		if err != nil {
			return classify(err, "resolve item price")
		}
		price = &display
		return nil
	})
	if err != nil {
		return nil, err
	}
	return price, nil
}

// ShippingQuote resolves the surcharge of a shipping type for a subtotal.
func (s *service) ShippingQuote(ctx context.Context, shippingTypeID, regionID int64, subtotal decimal.Decimal) (quote *pricing.ShippingQuote, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveQuote(opShippingQuote, err, time.Since(start)) }()

	if shippingTypeID <= 0 || regionID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping_type_id and region_id are required")
	}
	if subtotal.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subtotal must not be negative")
	}

	ctx = s.logg.WithRegionID(ctx, regionID)
	err = s.catalog.ReadSnapshot(ctx, func(r catalog.Reader) error {
		if err := s.requireRegion(ctx, r, regionID); err != nil {
			return err
		}
		if err := s.requireShippingType(ctx, r, shippingTypeID); err != nil {
			return err
		}
		rates, err := r.ShippingRates(ctx, shippingTypeID)
		if err != nil {
			return classify(err, "load shipping rates")
		}
		resolved, err := s.shipping.Resolve(rates, shippingTypeID, regionID, subtotal)
		if err != nil {
			return classify(err, "resolve shipping surcharge")
		}
		quote = &resolved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// Regions lists every region ordered by id.
func (s *service) Regions(ctx context.Context) (regions []pricing.Region, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveQuote(opRegions, err, time.Since(start)) }()

	catalogRegions, err := s.regionCatalog(ctx, s.catalog)
	if err != nil {
		return nil, err
	}
	return catalogRegions.All(), nil
}

func (s *service) regionCatalog(ctx context.Context, r catalog.Reader) (*pricing.RegionCatalog, error) {
	regions, err := r.ListRegions(ctx)
	if err != nil {
		return nil, classify(err, "load regions")
	}
	regionCatalog, err := pricing.NewRegionCatalog(regions)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDataIntegrity, err, "load regions")
	}
	return regionCatalog, nil
}

func (s *service) requireRegion(ctx context.Context, r catalog.Reader, regionID int64) error {
	regions, err := s.regionCatalog(ctx, r)
	if err != nil {
		return err
	}
	if !regions.Contains(regionID) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "region not found").
			WithDetails(map[string]any{"region_id": regionID})
	}
	return nil
}

func (s *service) requireShippingType(ctx context.Context, r catalog.Reader, shippingTypeID int64) error {
	exists, err := r.ShippingTypeExists(ctx, shippingTypeID)
	if err != nil {
		return classify(err, "load shipping type")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "shipping type not found").
			WithDetails(map[string]any{"shipping_type_id": shippingTypeID})
	}
	return nil
}

func (s *service) validateCart(input CartQuoteInput) error {
	var problems []string
	if input.RegionID <= 0 {
		problems = append(problems, "region_id is required")
	}
	if input.ShippingTypeID != nil && *input.ShippingTypeID <= 0 {
		problems = append(problems, "shipping_type_id must be positive")
	}
	if len(input.Lines) == 0 {
		problems = append(problems, "cart must contain at least one line")
	}
	for i, line := range input.Lines {
		if line.ItemID <= 0 {
			problems = append(problems, fmt.Sprintf("lines[%d].item_id is required", i))
		}
		if err := s.validateQuantity(line.Quantity); err != nil {
			problems = append(problems, fmt.Sprintf("lines[%d].%s", i, pkgerrors.As(err).Message()))
		}
		if line.CustomPrice != nil && line.CustomPrice.IsNegative() {
			problems = append(problems, fmt.Sprintf("lines[%d].custom_price must not be negative", i))
		}
	}
	if len(problems) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid cart").
			WithDetails(map[string]any{"problems": problems})
	}
	return nil
}

// validateMerged re-checks the quantity cap once duplicate lines are summed.
func (s *service) validateMerged(lines []pricing.CartLine) error {
	var problems []string
	for _, line := range lines {
		if line.Quantity > s.maxQty {
			problems = append(problems, fmt.Sprintf("item %d: merged quantity %d exceeds %d", line.ItemID, line.Quantity, s.maxQty))
		}
	}
	if len(problems) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid cart").
			WithDetails(map[string]any{"problems": problems})
	}
	return nil
}

func (s *service) validateQuantity(quantity int) error {
	switch {
	case quantity < 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	case quantity > s.maxQty:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity must not exceed %d", s.maxQty))
	}
	return nil
}

func mergeInput(lines []LineInput) []pricing.CartLine {
	cartLines := make([]pricing.CartLine, 0, len(lines))
	for _, line := range lines {
		cartLines = append(cartLines, pricing.CartLine{
			ItemID:      line.ItemID,
			Quantity:    line.Quantity,
			CustomPrice: line.CustomPrice,
		})
	}
	return pricing.MergeLines(cartLines)
}

func sortQuotedLines(lines []QuotedLine) {
	slices.SortStableFunc(lines, func(a, b QuotedLine) int {
		return pricing.CompareLines(a.CartLine, b.CartLine)
	})
}
