package aggregate

import (
	"testing"

	"github.com/vibecoding/vct/internal/core"
)

func analysisWithActivity(model string, toolCounts map[string]int64, editLines int64) *core.CodeAnalysis {
	rec := core.NewCodeAnalysisRecord()
	if model != "" {
		rec.ConversationUsage[model] = core.TokenCounts{InputTokens: 1}
	}
	for k, v := range toolCounts {
		rec.ToolCallCounts[k] = v
	}
	rec.TotalEditLines = editLines
	return &core.CodeAnalysis{Records: []*core.CodeAnalysisRecord{rec}}
}

func TestAnalysisSumsCounters(t *testing.T) {
	files := []FileResult{
		{Date: "2026-01-01", Analysis: analysisWithActivity("claude-sonnet-4", map[string]int64{"Bash": 2, "Edit": 1}, 5)},
		{Date: "2026-01-01", Analysis: analysisWithActivity("claude-sonnet-4", map[string]int64{"Bash": 1}, 3)},
	}

	byDate := Analysis(files)
	rows := byDate["2026-01-01"]
	if len(rows) != 1 {
		t.Fatalf("expected one (date,model) row, got %d", len(rows))
	}
	row := rows[0]
	if row.BashCount != 3 || row.EditCount != 1 || row.EditLines != 8 {
		t.Fatalf("unexpected summed row: %+v", row)
	}
}

func TestProviderGroupedBucketsByExtension(t *testing.T) {
	files := []FileResult{
		{Analysis: &core.CodeAnalysis{ExtensionName: core.ExtensionClaudeCode}},
		{Analysis: &core.CodeAnalysis{ExtensionName: core.ExtensionCodex}},
	}

	grouped := ProviderGrouped(files)
	if len(grouped[core.ExtensionClaudeCode]) != 1 || len(grouped[core.ExtensionCodex]) != 1 {
		t.Fatalf("unexpected grouping: %+v", grouped)
	}
	if len(grouped[core.ExtensionCopilotCLI]) != 0 || len(grouped[core.ExtensionGemini]) != 0 {
		t.Fatalf("expected empty buckets for providers with no files, got %+v", grouped)
	}
}
