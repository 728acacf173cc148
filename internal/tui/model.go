package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vibecoding/vct/internal/aggregate"
	"github.com/vibecoding/vct/internal/engine"
)

// tickMsg drives the renderer's periodic refresh, independent of
// bubbletea's own frame rate.
type tickMsg time.Time

type snapshotMsg engine.Snapshot

type errMsg struct{ err error }

// viewMode selects which aggregator view the live Model renders each cycle.
type viewMode int

const (
	viewUsage viewMode = iota
	viewAnalysis
)

// Model is the bubbletea model for the live usage/activity views.
type Model struct {
	eng      *engine.Engine
	mode     viewMode
	snapshot engine.Snapshot
	err      error
	width    int
	height   int
	quitting bool
}

// New builds a Model driven by eng's refresh cycle, rendering the priced
// usage table (`usage`'s live view).
func New(eng *engine.Engine) Model {
	return Model{eng: eng, mode: viewUsage}
}

// NewAnalysis builds a Model rendering the per-(date,model) activity table
// (`analysis`'s live view, with no --path/--all/--table given).
func NewAnalysis(eng *engine.Engine) Model {
	return Model{eng: eng, mode: viewAnalysis}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tickCmd(m.interval()))
}

func (m Model) interval() time.Duration {
	if m.eng.Interval <= 0 {
		return engine.DefaultInterval
	}
	return m.eng.Interval
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.eng.RefreshAll()
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg(snap)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tickMsg:
		return m, tea.Batch(m.refreshCmd(), tickCmd(m.interval()))

	case snapshotMsg:
		m.snapshot = engine.Snapshot(msg)
		m.err = nil

	case errMsg:
		m.err = msg.err
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Vibe Coding Tracker"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(m.snapshot.GeneratedAt.Format("2006-01-02 15:04:05")))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("refresh failed: %v", m.err)))
		b.WriteString("\n")
	}

	switch m.mode {
	case viewAnalysis:
		b.WriteString(renderActivityTable(m.snapshot.Activity))
	default:
		b.WriteString(renderUsageTable(m.snapshot.Usage))
		b.WriteString("\n")
		b.WriteString(renderAverages(m.snapshot.Averages))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("q/esc to quit"))

	return b.String()
}

func renderUsageTable(byDate map[string][]aggregate.UsageRow) string {
	dates := aggregate.SortedDates(byDate)
	if len(dates) == 0 {
		return dimStyle.Render("no session activity found")
	}

	cols := []string{"DATE", "MODEL", "INPUT", "OUTPUT", "CACHE READ", "COST USD"}
	var b strings.Builder
	b.WriteString(columnHeader.Render(padRow(cols, colWidths)))
	b.WriteString("\n")
	b.WriteString(borderStyle.Render(strings.Repeat("─", lineWidth(colWidths))))
	b.WriteString("\n")

	var totalCost float64
	for _, date := range dates {
		for _, row := range byDate[date] {
			model := row.Model
			if row.MatchedModel != "" {
				model = fmt.Sprintf("%s → %s", row.Model, row.MatchedModel)
			}
			cells := []string{
				date, model,
				fmt.Sprintf("%d", row.Usage.InputTokens),
				fmt.Sprintf("%d", row.Usage.OutputTokens),
				fmt.Sprintf("%d", row.Usage.CacheReadInputTokens),
				fmt.Sprintf("$%.4f", row.CostUSD),
			}
			style := rowStyle
			if row.MatchedModel != "" {
				style = fuzzyStyle
			}
			b.WriteString(style.Render(padRow(cells, colWidths)))
			b.WriteString("\n")
			totalCost += row.CostUSD
		}
	}

	b.WriteString(borderStyle.Render(strings.Repeat("─", lineWidth(colWidths))))
	b.WriteString("\n")
	b.WriteString(costStyle.Render(fmt.Sprintf("total: $%.4f", totalCost)))
	return b.String()
}

func renderActivityTable(byDate map[string][]aggregate.ActivityRow) string {
	dates := aggregate.SortedDates(byDate)
	if len(dates) == 0 {
		return dimStyle.Render("no session activity found")
	}

	widths := []int{10, 28, 10, 10, 10, 8, 8, 8, 8}
	cols := []string{"DATE", "MODEL", "EDIT_L", "READ_L", "WRITE_L", "BASH", "EDIT", "READ", "WRITE"}
	var b strings.Builder
	b.WriteString(columnHeader.Render(padRow(cols, widths)))
	b.WriteString("\n")
	b.WriteString(borderStyle.Render(strings.Repeat("─", lineWidth(widths))))
	b.WriteString("\n")

	for _, date := range dates {
		for _, row := range byDate[date] {
			cells := []string{
				date, row.Model,
				fmt.Sprintf("%d", row.EditLines),
				fmt.Sprintf("%d", row.ReadLines),
				fmt.Sprintf("%d", row.WriteLines),
				fmt.Sprintf("%d", row.BashCount),
				fmt.Sprintf("%d", row.EditCount),
				fmt.Sprintf("%d", row.ReadCount),
				fmt.Sprintf("%d", row.WriteCount),
			}
			b.WriteString(rowStyle.Render(padRow(cells, widths)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderAverages(avgs []aggregate.DailyAverage) string {
	if len(avgs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(columnHeader.Render("per-day averages"))
	b.WriteString("\n")
	for _, a := range avgs {
		b.WriteString(dimStyle.Render(fmt.Sprintf(
			"  %-12s edit=%.1f read=%.1f write=%.1f bash=%.1f (%d days)",
			a.Provider, a.AvgEditLines, a.AvgReadLines, a.AvgWriteLines, a.AvgBashCount, a.DistinctDays,
		)))
		b.WriteString("\n")
	}
	return b.String()
}

var colWidths = []int{10, 28, 10, 10, 12, 12}

func lineWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w + 1
	}
	return total
}

func padRow(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		w := widths[i%len(widths)]
		b.WriteString(lipgloss.NewStyle().Width(w).Render(cell))
		b.WriteString(" ")
	}
	return b.String()
}
