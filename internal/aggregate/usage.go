package aggregate

import (
	"sort"

	"github.com/vibecoding/vct/internal/core"
	"github.com/vibecoding/vct/internal/pricing"
)

// UsageRow is one priced (date, model) fold (the Model-priced usage row).
type UsageRow struct {
	Date         string
	Model        string
	Usage        core.TokenCounts
	CostUSD      float64
	MatchedModel string
}

// Usage builds the date→model-keyed usage+cost view (C9) from files,
// pricing each (date, model) combination once via matcher.
func Usage(files []FileResult, matcher *pricing.Matcher) map[string][]UsageRow {
	type key struct{ date, model string }
	folded := make(map[key]core.TokenCounts)
	order := make(map[string][]string) // date -> models in first-seen order

	for _, f := range files {
		if f.Analysis == nil {
			continue
		}
		for _, rec := range f.Analysis.Records {
			for model, counts := range rec.ConversationUsage {
				if counts.IsZero() {
					continue
				}
				k := key{f.Date, model}
				if _, ok := folded[k]; !ok {
					order[f.Date] = append(order[f.Date], model)
				}
				existing := folded[k]
				existing.Add(counts)
				folded[k] = existing
			}
		}
	}

	out := make(map[string][]UsageRow, len(order))
	for date, models := range order {
		rows := make([]UsageRow, 0, len(models))
		for _, model := range models {
			counts := folded[key{date, model}]
			m := matcher.Resolve(model)
			row := UsageRow{Date: date, Model: model, Usage: counts}
			if m.Found {
				row.CostUSD = pricing.Cost(counts, m.Entry)
				if m.MatchedKey != model {
					row.MatchedModel = m.MatchedKey
				}
			}
			rows = append(rows, row)
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Model < rows[j].Model })
		out[date] = rows
	}
	return out
}

// SortedDates returns the keys of a date-keyed map in lexical order.
func SortedDates[T any](m map[string]T) []string {
	dates := make([]string, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
