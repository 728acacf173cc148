package pricing

import "github.com/vibecoding/vct/internal/core"

// aboveTierThreshold is the token count past which the above-200k rates
// apply to a single fold's input-bearing tokens.
const aboveTierThreshold = 200_000

// Cost computes the USD cost of counts against entry. When the sum of
// input-bearing tokens (input + cache_read + cache_creation) for this
// fold exceeds aboveTierThreshold, the above-200k rates are used for the
// whole fold instead of the base rates.
func Cost(counts core.TokenCounts, entry Entry) float64 {
	inputBearing := counts.InputTokens + counts.CacheReadInputTokens + counts.CacheCreationInputTokens

	inputRate, outputRate, cacheReadRate, cacheCreationRate := entry.InputCostPerToken, entry.OutputCostPerToken,
		entry.CacheReadInputTokenCost, entry.CacheCreationInputTokenCost
	if inputBearing > aboveTierThreshold {
		inputRate, outputRate, cacheReadRate, cacheCreationRate = entry.InputCostPerTokenAbove200k, entry.OutputCostPerTokenAbove200k,
			entry.CacheReadCostAbove200k, entry.CacheCreationCostAbove200k
	}

	return float64(counts.InputTokens)*inputRate +
		float64(counts.OutputTokens)*outputRate +
		float64(counts.CacheReadInputTokens)*cacheReadRate +
		float64(counts.CacheCreationInputTokens)*cacheCreationRate
}
