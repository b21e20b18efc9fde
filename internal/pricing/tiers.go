package pricing

import (
	"cmp"
	"fmt"
	"sort"
)

// Threshold is the scalar a tier is keyed by. decimal.Decimal satisfies it for
// monetary thresholds and Quantity for item counts.
type Threshold[K any] interface {
	Cmp(K) int
	Sign() int
}

// Quantity is an item count used as a tier threshold.
type Quantity int

func (q Quantity) Cmp(other Quantity) int { return cmp.Compare(q, other) }

func (q Quantity) Sign() int { return cmp.Compare(q, 0) }

// Tier pairs a threshold with the value that applies once the threshold is met.
type Tier[K Threshold[K], V any] struct {
	Threshold K
	Value     V
}

// TierTable holds tiers sorted ascending by threshold. Tiers sharing a
// threshold keep the order they were supplied in.
type TierTable[K Threshold[K], V any] struct {
	tiers []Tier[K, V]
}

// NewTierTable copies and sorts the tiers. A negative threshold is rejected.
func NewTierTable[K Threshold[K], V any](tiers []Tier[K, V]) (*TierTable[K, V], error) {
	sorted := make([]Tier[K, V], len(tiers))
	copy(sorted, tiers)
	for i, tier := range sorted {
		if tier.Threshold.Sign() < 0 {
			return nil, fmt.Errorf("tier %d has negative threshold %v", i, tier.Threshold)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Threshold.Cmp(sorted[j].Threshold) < 0
	})
	return &TierTable[K, V]{tiers: sorted}, nil
}

// Len returns the number of tiers.
func (t *TierTable[K, V]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.tiers)
}

// Tiers returns a copy of the sorted tiers.
func (t *TierTable[K, V]) Tiers() []Tier[K, V] {
	if t == nil {
		return nil
	}
	out := make([]Tier[K, V], len(t.tiers))
	copy(out, t.tiers)
	return out
}

// Highest returns the tier with the largest threshold that input meets.
// With several tiers on that threshold the last supplied one wins.
func (t *TierTable[K, V]) Highest(input K) (Tier[K, V], bool) {
	var (
		selected Tier[K, V]
		found    bool
	)
	if t == nil {
		return selected, false
	}
	for _, tier := range t.tiers {
		if tier.Threshold.Cmp(input) > 0 {
			break
		}
		selected = tier
		found = true
	}
	return selected, found
}

// Best returns the candidate ranked first by better among tiers whose
// threshold input meets. better(a, b) reports whether a strictly outranks b;
// among equally ranked candidates the earliest in table order wins.
func (t *TierTable[K, V]) Best(input K, better func(a, b V) bool) (Tier[K, V], bool) {
	var (
		selected Tier[K, V]
		found    bool
	)
	if t == nil {
		return selected, false
	}
	for _, tier := range t.tiers {
		if tier.Threshold.Cmp(input) > 0 {
			break
		}
		if !found || better(tier.Value, selected.Value) {
			selected = tier
			found = true
		}
	}
	return selected, found
}
