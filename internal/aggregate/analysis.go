package aggregate

import (
	"sort"

	"github.com/vibecoding/vct/internal/core"
)

// ActivityRow is one (date, model) analysis activity row (C10).
type ActivityRow struct {
	Date           string `json:"date"`
	Model          string `json:"model"`
	EditLines      int64  `json:"editLines"`
	ReadLines      int64  `json:"readLines"`
	WriteLines     int64  `json:"writeLines"`
	BashCount      int64  `json:"bashCount"`
	EditCount      int64  `json:"editCount"`
	ReadCount      int64  `json:"readCount"`
	TodoWriteCount int64  `json:"todoWriteCount"`
	WriteCount     int64  `json:"writeCount"`
}

// Analysis builds the date→model-keyed activity-counter view (C10) from
// files: toolCallCounts and the total* counters, summed per (date, model).
func Analysis(files []FileResult) map[string][]ActivityRow {
	type key struct{ date, model string }
	folded := make(map[key]*ActivityRow)
	order := make(map[string][]string)

	for _, f := range files {
		if f.Analysis == nil {
			continue
		}
		for _, rec := range f.Analysis.Records {
			models := modelsFor(rec)
			for _, model := range models {
				k := key{f.Date, model}
				row, ok := folded[k]
				if !ok {
					row = &ActivityRow{Date: f.Date, Model: model}
					folded[k] = row
					order[f.Date] = append(order[f.Date], model)
				}
				row.EditLines += rec.TotalEditLines
				row.ReadLines += rec.TotalReadLines
				row.WriteLines += rec.TotalWriteLines
				row.BashCount += rec.ToolCallCounts["Bash"]
				row.EditCount += rec.ToolCallCounts["Edit"]
				row.ReadCount += rec.ToolCallCounts["Read"]
				row.TodoWriteCount += rec.ToolCallCounts["TodoWrite"]
				row.WriteCount += rec.ToolCallCounts["Write"]
			}
		}
	}

	out := make(map[string][]ActivityRow, len(order))
	for date, models := range order {
		rows := make([]ActivityRow, 0, len(models))
		for _, model := range models {
			rows = append(rows, *folded[key{date, model}])
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Model < rows[j].Model })
		out[date] = rows
	}
	return out
}

// modelsFor returns the models an activity row should be attributed to:
// the conversation-usage keys when present, or a single empty-string
// placeholder when the record has no usage entries at all. Copilot
// records always carry their fixed zero-count "copilot" key, so they are
// attributed to that model.
func modelsFor(rec *core.CodeAnalysisRecord) []string {
	if len(rec.ConversationUsage) == 0 {
		return []string{""}
	}
	models := make([]string, 0, len(rec.ConversationUsage))
	for model := range rec.ConversationUsage {
		models = append(models, model)
	}
	return models
}

// FlattenActivity flattens a date-keyed activity view into the spec's
// external JSON contract: a single array of rows ordered by date then
// model, for the `analysis --output` export.
func FlattenActivity(byDate map[string][]ActivityRow) []ActivityRow {
	dates := sort.StringSlice(nil)
	for d := range byDate {
		dates = append(dates, d)
	}
	dates.Sort()

	out := make([]ActivityRow, 0)
	for _, d := range dates {
		out = append(out, byDate[d]...)
	}
	return out
}

// ProviderGrouped is the C10-B archival export: every complete
// CodeAnalysis observed, grouped by its source provider.
func ProviderGrouped(files []FileResult) map[core.ExtensionName][]*core.CodeAnalysis {
	out := map[core.ExtensionName][]*core.CodeAnalysis{
		core.ExtensionClaudeCode: {},
		core.ExtensionCodex:      {},
		core.ExtensionCopilotCLI: {},
		core.ExtensionGemini:     {},
	}
	for _, f := range files {
		if f.Analysis == nil {
			continue
		}
		out[f.Analysis.ExtensionName] = append(out[f.Analysis.ExtensionName], f.Analysis)
	}
	return out
}

// SingleFile is the C10-C variant: the CodeAnalysis of exactly one file.
func SingleFile(pc interface {
	GetOrParse(string) (*core.CodeAnalysis, error)
}, path string) (*core.CodeAnalysis, error) {
	return pc.GetOrParse(path)
}
