// Package pricing resolves the effective price of catalog items.
//
// Everything here is a pure function of already-loaded snapshots: region
// prices, quantity tiers, sale windows and shipping rate tiers go in, prices
// come out. Nothing in the package performs I/O, logs or keeps state between
// calls, so values may be shared across goroutines freely.
//
// Quantity tiers and shipping tiers share one generic TierTable. Quantity
// tiers always take the highest threshold met. Shipping tiers default to the
// legacy ranking (flat amount descending, then percentage ascending), which
// can prefer a lower threshold over a higher one; the highest-threshold policy
// is available through enums.ShippingTierPolicyHighestThreshold.
//
// Sale discounts apply after quantity tiers, to the tiered price, and are
// rounded half-up to cents when applied.
package pricing
