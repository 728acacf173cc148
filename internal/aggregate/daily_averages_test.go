package aggregate

import "testing"

func TestDailyAveragesPerProvider(t *testing.T) {
	byDate := map[string][]ActivityRow{
		"2026-01-01": {
			{Date: "2026-01-01", Model: "claude-sonnet-4", EditLines: 10},
			{Date: "2026-01-01", Model: "gpt-4-turbo", EditLines: 4},
		},
		"2026-01-02": {
			{Date: "2026-01-02", Model: "claude-sonnet-4", EditLines: 20},
		},
	}

	avgs := DailyAverages(byDate)

	var claude, overall *DailyAverage
	for i := range avgs {
		switch avgs[i].Provider {
		case ProviderClaudeCode:
			claude = &avgs[i]
		case "Overall":
			overall = &avgs[i]
		}
	}

	if claude == nil {
		t.Fatal("expected a Claude Code row")
	}
	if claude.DistinctDays != 2 || claude.AvgEditLines != 15 {
		t.Fatalf("expected claude avg over 2 days = 15, got %+v", claude)
	}
	if overall == nil {
		t.Fatal("expected an overall row")
	}
	if overall.DistinctDays != 2 {
		t.Fatalf("expected overall distinct days 2, got %d", overall.DistinctDays)
	}
}

func TestDailyAveragesOmitsZeroDayProviders(t *testing.T) {
	byDate := map[string][]ActivityRow{
		"2026-01-01": {{Date: "2026-01-01", Model: "claude-sonnet-4", EditLines: 1}},
	}

	avgs := DailyAverages(byDate)
	for _, a := range avgs {
		if a.Provider == ProviderGemini || a.Provider == ProviderCopilot || a.Provider == ProviderCodex {
			t.Fatalf("expected providers with zero days to be omitted, got %+v", a)
		}
	}
}

func TestClassifyPrefixRules(t *testing.T) {
	tests := map[string]ProviderLabel{
		"claude-sonnet-4":    ProviderClaudeCode,
		"gpt-4-turbo":        ProviderCodex,
		"o1-preview":         ProviderCodex,
		"o3-mini":            ProviderCodex,
		"copilot":            ProviderCopilot,
		"gemini-2.0-flash":   ProviderGemini,
		"some-other-model":   ProviderOther,
	}
	for model, want := range tests {
		if got := classify(model); got != want {
			t.Errorf("classify(%q) = %q, want %q", model, got, want)
		}
	}
}
