package aggregate

import "strings"

// ProviderLabel names one of the five buckets the Daily-Averages Reducer
// classifies activity rows into.
type ProviderLabel string

const (
	ProviderClaudeCode ProviderLabel = "Claude Code"
	ProviderCodex      ProviderLabel = "Codex"
	ProviderCopilot    ProviderLabel = "Copilot"
	ProviderGemini     ProviderLabel = "Gemini"
	ProviderOther      ProviderLabel = "Other"
)

// DailyAverage is one provider's (or the overall) per-day average row.
type DailyAverage struct {
	Provider     ProviderLabel
	DistinctDays int
	AvgEditLines float64
	AvgReadLines float64
	AvgWriteLines float64
	AvgBashCount float64
	AvgEditCount float64
	AvgReadCount float64
	AvgTodoWriteCount float64
	AvgWriteCount float64
}

type totals struct {
	days  map[string]struct{}
	edit, read, write           int64
	bash, editC, readC, todo, writeC int64
}

func newTotals() *totals { return &totals{days: make(map[string]struct{})} }

func (t *totals) add(row ActivityRow) {
	t.days[row.Date] = struct{}{}
	t.edit += row.EditLines
	t.read += row.ReadLines
	t.write += row.WriteLines
	t.bash += row.BashCount
	t.editC += row.EditCount
	t.readC += row.ReadCount
	t.todo += row.TodoWriteCount
	t.writeC += row.WriteCount
}

func (t *totals) average(provider ProviderLabel) (DailyAverage, bool) {
	n := len(t.days)
	if n == 0 {
		return DailyAverage{}, false
	}
	d := float64(n)
	return DailyAverage{
		Provider:          provider,
		DistinctDays:      n,
		AvgEditLines:      float64(t.edit) / d,
		AvgReadLines:      float64(t.read) / d,
		AvgWriteLines:     float64(t.write) / d,
		AvgBashCount:      float64(t.bash) / d,
		AvgEditCount:      float64(t.editC) / d,
		AvgReadCount:      float64(t.readC) / d,
		AvgTodoWriteCount: float64(t.todo) / d,
		AvgWriteCount:     float64(t.writeC) / d,
	}, true
}

// classify maps a model name to its provider bucket by case-insensitive
// prefix rules.
func classify(model string) ProviderLabel {
	m := strings.ToLower(model)
	switch {
	case strings.HasPrefix(m, "claude"):
		return ProviderClaudeCode
	case strings.HasPrefix(m, "gpt"), strings.HasPrefix(m, "o1"), strings.HasPrefix(m, "o3"):
		return ProviderCodex
	case strings.HasPrefix(m, "copilot"):
		return ProviderCopilot
	case strings.HasPrefix(m, "gemini"):
		return ProviderGemini
	default:
		return ProviderOther
	}
}

// DailyAverages reduces the per-(date, model) activity rows (from every
// date in an Analysis() result) into per-provider and an overall
// per-day average. Providers that contributed zero days are omitted.
func DailyAverages(byDate map[string][]ActivityRow) []DailyAverage {
	byProvider := map[ProviderLabel]*totals{
		ProviderClaudeCode: newTotals(),
		ProviderCodex:      newTotals(),
		ProviderCopilot:    newTotals(),
		ProviderGemini:     newTotals(),
		ProviderOther:      newTotals(),
	}
	overall := newTotals()

	for _, rows := range byDate {
		for _, row := range rows {
			provider := classify(row.Model)
			byProvider[provider].add(row)
			overall.add(row)
		}
	}

	var out []DailyAverage
	order := []ProviderLabel{ProviderClaudeCode, ProviderCodex, ProviderCopilot, ProviderGemini, ProviderOther}
	for _, p := range order {
		if avg, ok := byProvider[p].average(p); ok {
			out = append(out, avg)
		}
	}
	if avg, ok := overall.average("Overall"); ok {
		out = append(out, avg)
	}
	return out
}
