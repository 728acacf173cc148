package pricing

import (
	"math"
	"testing"

	"github.com/vibecoding/vct/internal/core"
)

func TestCostBaseRates(t *testing.T) {
	counts := core.TokenCounts{
		InputTokens:              1000,
		OutputTokens:             500,
		CacheReadInputTokens:     2000,
		CacheCreationInputTokens: 500,
	}
	entry := Entry{
		InputCostPerToken:           3e-6,
		OutputCostPerToken:          1.5e-5,
		CacheReadInputTokenCost:     3e-7,
		CacheCreationInputTokenCost: 3.75e-6,
	}

	got := Cost(counts, entry)
	want := 0.012975
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Cost() = %v, want %v", got, want)
	}
}

func TestCostAbove200kUsesTieredRates(t *testing.T) {
	counts := core.TokenCounts{InputTokens: 250_000, OutputTokens: 1000}
	entry := Entry{
		InputCostPerToken:          1e-6,
		OutputCostPerToken:         1e-6,
		InputCostPerTokenAbove200k: 2e-6,
		OutputCostPerTokenAbove200k: 2e-6,
	}

	got := Cost(counts, entry)
	want := 250_000*2e-6 + 1000*2e-6
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Cost() = %v, want %v (above-200k rates)", got, want)
	}
}

func TestCostZeroEntry(t *testing.T) {
	counts := core.TokenCounts{InputTokens: 1000, OutputTokens: 500}
	if got := Cost(counts, Entry{}); got != 0 {
		t.Fatalf("Cost() with zero-cost entry = %v, want 0", got)
	}
}
