package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/catalog-pricing/pkg/enums"
)

// ErrNegativeSubtotal is returned when a shipping quote is asked for a subtotal below zero.
var ErrNegativeSubtotal = errors.New("pricing: subtotal must not be negative")

// ShippingRateTier is a surcharge rule for a shipping type in a region. A tier
// is expected to carry exactly one of Amount and Percentage.
type ShippingRateTier struct {
	ID             int64            `json:"id"`
	ShippingTypeID int64            `json:"shipping_type_id"`
	RegionID       int64            `json:"region_id"`
	Threshold      decimal.Decimal  `json:"threshold"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Percentage     *decimal.Decimal `json:"percentage,omitempty"`
}

// ShippingQuote is the resolved surcharge and the tier it came from.
type ShippingQuote struct {
	Subtotal  decimal.Decimal   `json:"subtotal"`
	Surcharge decimal.Decimal   `json:"surcharge"`
	Tier      *ShippingRateTier `json:"tier,omitempty"`
}

// ShippingRateResolver computes a shipping surcharge from subtotal tiers.
type ShippingRateResolver struct {
	policy enums.ShippingTierPolicy
}

// NewShippingRateResolver builds a resolver. An empty policy means legacy.
func NewShippingRateResolver(policy enums.ShippingTierPolicy) (*ShippingRateResolver, error) {
	if policy == "" {
		policy = enums.ShippingTierPolicyLegacy
	}
	if !policy.IsValid() {
		return nil, fmt.Errorf("pricing: unknown shipping tier policy %q", policy)
	}
	return &ShippingRateResolver{policy: policy}, nil
}

// Policy returns the selection policy in use.
func (r *ShippingRateResolver) Policy() enums.ShippingTierPolicy {
	return r.policy
}

// Resolve picks one tier among rates for the shipping type and region whose
// threshold the subtotal meets. A flat amount wins over a percentage on the
// same tier. No matching tier is a zero surcharge.
func (r *ShippingRateResolver) Resolve(rates []ShippingRateTier, shippingTypeID, regionID int64, subtotal decimal.Decimal) (ShippingQuote, error) {
	if subtotal.IsNegative() {
		return ShippingQuote{}, ErrNegativeSubtotal
	}

	table, err := r.table(rates, shippingTypeID, regionID)
	if err != nil {
		return ShippingQuote{}, err
	}

	var (
		winner Tier[decimal.Decimal, ShippingRateTier]
		found  bool
	)
	switch r.policy {
	case enums.ShippingTierPolicyHighestThreshold:
		winner, found = table.Highest(subtotal)
	default:
		winner, found = table.Best(subtotal, outranksLegacy)
	}

	quote := ShippingQuote{Subtotal: subtotal, Surcharge: zero}
	if !found {
		return quote, nil
	}

	tier := winner.Value
	quote.Tier = &tier
	switch {
	case tier.Amount != nil:
		quote.Surcharge = *tier.Amount
	case tier.Percentage != nil:
		quote.Surcharge = RoundMoney(subtotal.Mul(*tier.Percentage))
	}
	return quote, nil
}

func (r *ShippingRateResolver) table(rates []ShippingRateTier, shippingTypeID, regionID int64) (*TierTable[decimal.Decimal, ShippingRateTier], error) {
	tiers := make([]Tier[decimal.Decimal, ShippingRateTier], 0, len(rates))
	for _, rate := range rates {
		if rate.ShippingTypeID != shippingTypeID || rate.RegionID != regionID {
			continue
		}
		if rate.Percentage != nil && !validFraction(*rate.Percentage) {
			return nil, invalidTier(SourceShippingRate, shippingTypeID, "rate %d percentage %s outside (0,1)", rate.ID, rate.Percentage)
		}
		if rate.Amount != nil && rate.Amount.IsNegative() {
			return nil, invalidTier(SourceShippingRate, shippingTypeID, "rate %d has negative amount %s", rate.ID, rate.Amount)
		}
		tiers = append(tiers, Tier[decimal.Decimal, ShippingRateTier]{Threshold: rate.Threshold, Value: rate})
	}
	table, err := NewTierTable(tiers)
	if err != nil {
		return nil, invalidTier(SourceShippingRate, shippingTypeID, "%s", err.Error())
	}
	return table, nil
}

// outranksLegacy orders tiers by amount descending with missing amounts last,
// then percentage ascending with missing percentages first.
func outranksLegacy(a, b ShippingRateTier) bool {
	switch {
	case a.Amount != nil && b.Amount == nil:
		return true
	case a.Amount == nil && b.Amount != nil:
		return false
	case a.Amount != nil && b.Amount != nil:
		if c := a.Amount.Cmp(*b.Amount); c != 0 {
			return c > 0
		}
	}
	switch {
	case a.Percentage == nil && b.Percentage != nil:
		return true
	case a.Percentage != nil && b.Percentage == nil:
		return false
	case a.Percentage != nil && b.Percentage != nil:
		return a.Percentage.LessThan(*b.Percentage)
	}
	return false
}
