package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierTableSortsAscending(t *testing.T) {
	table, err := NewTierTable([]Tier[Quantity, string]{
		{Threshold: 10, Value: "ten"},
		{Threshold: 1, Value: "one"},
		{Threshold: 5, Value: "five"},
	})
	require.NoError(t, err)

	tiers := table.Tiers()
	require.Len(t, tiers, 3)
	assert.Equal(t, []Quantity{1, 5, 10}, []Quantity{tiers[0].Threshold, tiers[1].Threshold, tiers[2].Threshold})
}

func TestTierTableHighestPicksLargestQualifyingThreshold(t *testing.T) {
	table, err := NewTierTable([]Tier[Quantity, string]{
		{Threshold: 5, Value: "five"},
		{Threshold: 10, Value: "ten"},
	})
	require.NoError(t, err)

	tests := []struct {
		input Quantity
		want  string
		found bool
	}{
		{input: 0},
		{input: 4},
		{input: 5, want: "five", found: true},
		{input: 9, want: "five", found: true},
		{input: 10, want: "ten", found: true},
		{input: 1000, want: "ten", found: true},
	}
	for _, tt := range tests {
		tier, ok := table.Highest(tt.input)
		assert.Equal(t, tt.found, ok, "input %d", tt.input)
		if tt.found {
			assert.Equal(t, tt.want, tier.Value, "input %d", tt.input)
		}
	}
}

func TestTierTableHighestOnDuplicateThresholdTakesLastSupplied(t *testing.T) {
	table, err := NewTierTable([]Tier[Quantity, string]{
		{Threshold: 5, Value: "first"},
		{Threshold: 5, Value: "second"},
	})
	require.NoError(t, err)

	tier, ok := table.Highest(5)
	require.True(t, ok)
	assert.Equal(t, "second", tier.Value)
}

func TestTierTableBestUsesRankingAmongCandidates(t *testing.T) {
	table, err := NewTierTable([]Tier[decimal.Decimal, int]{
		{Threshold: money("0"), Value: 3},
		{Threshold: money("50"), Value: 1},
		{Threshold: money("100"), Value: 9},
	})
	require.NoError(t, err)

	larger := func(a, b int) bool { return a > b }

	tier, ok := table.Best(money("75"), larger)
	require.True(t, ok)
	assert.Equal(t, 3, tier.Value, "threshold 0 outranks threshold 50")

	tier, ok = table.Best(money("100"), larger)
	require.True(t, ok)
	assert.Equal(t, 9, tier.Value)

	_, ok = table.Best(money("-1"), larger)
	assert.False(t, ok)
}

func TestTierTableBestKeepsEarliestOnTie(t *testing.T) {
	table, err := NewTierTable([]Tier[Quantity, string]{
		{Threshold: 2, Value: "b"},
		{Threshold: 1, Value: "a"},
	})
	require.NoError(t, err)

	tier, ok := table.Best(5, func(a, b string) bool { return false })
	require.True(t, ok)
	assert.Equal(t, "a", tier.Value)
}

func TestTierTableRejectsNegativeThreshold(t *testing.T) {
	_, err := NewTierTable([]Tier[decimal.Decimal, int]{{Threshold: money("-0.01"), Value: 1}})
	require.Error(t, err)
}

func TestEmptyTierTableMatchesNothing(t *testing.T) {
	table, err := NewTierTable[Quantity, int](nil)
	require.NoError(t, err)
	_, ok := table.Highest(100)
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())

	var missing *TierTable[Quantity, int]
	_, ok = missing.Highest(1)
	assert.False(t, ok)
}
