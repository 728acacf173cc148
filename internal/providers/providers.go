// Package providers dispatches a detected session format to its analyzer
// and assembles the resulting record into a uniform core.CodeAnalysis.
package providers

import (
	"encoding/json"

	"github.com/vibecoding/vct/internal/core"
	"github.com/vibecoding/vct/internal/providers/claudecode"
	"github.com/vibecoding/vct/internal/providers/codex"
	"github.com/vibecoding/vct/internal/providers/copilot"
	"github.com/vibecoding/vct/internal/providers/gemini"
)

// insightsVersion is stamped on every produced CodeAnalysis; bump when the
// record shape changes in a way downstream consumers should key off of.
const insightsVersion = "1.0.0"

// Analyze reads path, detects its format and runs the matching analyzer,
// returning the uniform CodeAnalysis the rest of the engine consumes.
func Analyze(path string) (*core.CodeAnalysis, error) {
	records, err := core.ReadRecords(path)
	if err != nil {
		return nil, err
	}
	return AnalyzeRecords(records), nil
}

// AnalyzeRecords runs format detection and the matching analyzer over an
// already-parsed record sequence. Exposed separately so callers that
// already hold the parsed records (e.g. a cache hit path) don't re-read.
func AnalyzeRecords(records []json.RawMessage) *core.CodeAnalysis {
	format := core.DetectFormat(records)

	var rec *core.CodeAnalysisRecord
	switch format {
	case core.ExtensionClaudeCode:
		rec = claudecode.Analyze(records)
	case core.ExtensionCodex:
		rec = codex.Analyze(records)
	case core.ExtensionCopilotCLI:
		rec = copilot.Analyze(records)
	case core.ExtensionGemini:
		rec = gemini.Analyze(records)
	default:
		rec = codex.Analyze(records)
	}
	// Copilot reports no token usage; its fixed zero-count "copilot" entry
	// is intentional and must survive pruning.
	if format != core.ExtensionCopilotCLI {
		rec.PruneZeroUsage()
	}

	return &core.CodeAnalysis{
		ExtensionName:   format,
		InsightsVersion: insightsVersion,
		Records:         []*core.CodeAnalysisRecord{rec},
	}
}
