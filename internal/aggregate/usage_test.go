package aggregate

import (
	"math"
	"testing"

	"github.com/vibecoding/vct/internal/core"
	"github.com/vibecoding/vct/internal/pricing"
)

func analysisWithUsage(model string, counts core.TokenCounts) *core.CodeAnalysis {
	rec := core.NewCodeAnalysisRecord()
	rec.ConversationUsage[model] = counts
	return &core.CodeAnalysis{ExtensionName: core.ExtensionClaudeCode, Records: []*core.CodeAnalysisRecord{rec}}
}

func TestUsageFoldsAcrossFiles(t *testing.T) {
	files := []FileResult{
		{Date: "2026-01-01", Analysis: analysisWithUsage("claude-sonnet-4", core.TokenCounts{InputTokens: 100})},
		{Date: "2026-01-01", Analysis: analysisWithUsage("claude-sonnet-4", core.TokenCounts{InputTokens: 50})},
		{Date: "2026-01-02", Analysis: analysisWithUsage("claude-sonnet-4", core.TokenCounts{InputTokens: 10})},
	}

	matcher := pricing.NewMatcher(&pricing.Catalog{})
	byDate := Usage(files, matcher)

	if len(byDate["2026-01-01"]) != 1 {
		t.Fatalf("expected one row for 2026-01-01, got %d", len(byDate["2026-01-01"]))
	}
	if got := byDate["2026-01-01"][0].Usage.InputTokens; got != 150 {
		t.Fatalf("expected folded input tokens 150, got %d", got)
	}
	if len(byDate["2026-01-02"]) != 1 {
		t.Fatalf("expected one row for 2026-01-02, got %d", len(byDate["2026-01-02"]))
	}
}

func TestUsageSkipsZeroUsageModels(t *testing.T) {
	files := []FileResult{
		{Date: "2026-01-01", Analysis: analysisWithUsage("copilot", core.TokenCounts{})},
	}
	matcher := pricing.NewMatcher(&pricing.Catalog{})
	byDate := Usage(files, matcher)

	if len(byDate["2026-01-01"]) != 0 {
		t.Fatalf("expected an all-zero usage entry to be skipped, got %+v", byDate["2026-01-01"])
	}
}

func TestUsageIsIdempotentAcrossRuns(t *testing.T) {
	files := []FileResult{
		{Date: "2026-01-01", Analysis: analysisWithUsage("claude-sonnet-4", core.TokenCounts{InputTokens: 100})},
	}
	matcher := pricing.NewMatcher(&pricing.Catalog{})

	first := Usage(files, matcher)
	second := Usage(files, matcher)

	if first["2026-01-01"][0].Usage.InputTokens != second["2026-01-01"][0].Usage.InputTokens {
		t.Fatal("expected identical output across repeated runs over an unchanged file set")
	}
}

func approxEqual(a, b, eps float64) bool { return math.Abs(a-b) <= eps }
