package enums

import "fmt"

// ShippingTierPolicy selects which matching shipping rate tier wins.
type ShippingTierPolicy string

const (
	// ShippingTierPolicyLegacy ranks matching tiers by flat amount descending,
	// then percentage ascending, and takes the first. It ignores thresholds
	// when ranking.
	ShippingTierPolicyLegacy ShippingTierPolicy = "legacy"
	// ShippingTierPolicyHighestThreshold takes the matching tier with the
	// largest threshold, like quantity tiers.
	ShippingTierPolicyHighestThreshold ShippingTierPolicy = "highest_threshold"
)

var validShippingTierPolicies = []ShippingTierPolicy{
	ShippingTierPolicyLegacy,
	ShippingTierPolicyHighestThreshold,
}

// String implements fmt.Stringer.
func (p ShippingTierPolicy) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ShippingTierPolicy.
func (p ShippingTierPolicy) IsValid() bool {
	for _, candidate := range validShippingTierPolicies {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseShippingTierPolicy converts raw input into a ShippingTierPolicy.
func ParseShippingTierPolicy(value string) (ShippingTierPolicy, error) {
	for _, candidate := range validShippingTierPolicies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipping tier policy %q", value)
}
