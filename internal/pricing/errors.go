package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrPriceNotFound matches every PriceNotFoundError via errors.Is.
	ErrPriceNotFound = errors.New("pricing: price not found")
	// ErrInvalidTierData matches every InvalidTierDataError via errors.Is.
	ErrInvalidTierData = errors.New("pricing: invalid tier data")
)

// PriceNotFoundError reports that an item has no price row for a region.
type PriceNotFoundError struct {
	ItemID   int64
	RegionID int64
}

func (e *PriceNotFoundError) Error() string {
	return fmt.Sprintf("pricing: no price for item %d in region %d", e.ItemID, e.RegionID)
}

func (e *PriceNotFoundError) Is(target error) bool {
	return target == ErrPriceNotFound
}

// TierSource names the kind of reference data an InvalidTierDataError came from.
type TierSource string

const (
	SourceQuantityTier TierSource = "quantity_tier"
	SourceShippingRate TierSource = "shipping_rate"
	SourceSaleWindow   TierSource = "sale_window"
)

// InvalidTierDataError reports reference data that cannot be priced safely:
// a percentage outside (0,1), a negative threshold or a negative price.
type InvalidTierDataError struct {
	Source  TierSource
	OwnerID int64
	Reason  string
}

func (e *InvalidTierDataError) Error() string {
	return fmt.Sprintf("pricing: invalid %s data for %d: %s", e.Source, e.OwnerID, e.Reason)
}

func (e *InvalidTierDataError) Is(target error) bool {
	return target == ErrInvalidTierData
}

func invalidTier(source TierSource, ownerID int64, format string, args ...any) error {
	return &InvalidTierDataError{Source: source, OwnerID: ownerID, Reason: fmt.Sprintf(format, args...)}
}

// ErrNegativeQuantity is returned when a line or lookup asks for fewer than zero units.
var ErrNegativeQuantity = errors.New("pricing: quantity must not be negative")
