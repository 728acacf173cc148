// Package render formats aggregator output for the three non-interactive
// output modes the CLI supports: a static table (TTY fallback or
// --table), plain text, and pretty-printed JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/vibecoding/vct/internal/aggregate"
)

// IsTerminal reports whether f is attached to an interactive terminal,
// the signal the CLI uses to decide between the live TUI and a static
// render.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// UsageTable writes a fixed-width table of usage rows to w.
func UsageTable(w io.Writer, byDate map[string][]aggregate.UsageRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tMODEL\tINPUT\tOUTPUT\tCACHE_READ\tCOST_USD")
	var total float64
	for _, date := range aggregate.SortedDates(byDate) {
		for _, row := range byDate[date] {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t$%.4f\n",
				date, row.Model, row.Usage.InputTokens, row.Usage.OutputTokens,
				row.Usage.CacheReadInputTokens, row.CostUSD)
			total += row.CostUSD
		}
	}
	fmt.Fprintf(tw, "\t\t\t\tTOTAL\t$%.4f\n", total)
	return tw.Flush()
}

// UsageText writes a plain-line rendering of usage rows to w.
func UsageText(w io.Writer, byDate map[string][]aggregate.UsageRow) error {
	var b strings.Builder
	for _, date := range aggregate.SortedDates(byDate) {
		for _, row := range byDate[date] {
			fmt.Fprintf(&b, "%s %s input=%d output=%d cache_read=%d cost=$%.4f\n",
				date, row.Model, row.Usage.InputTokens, row.Usage.OutputTokens,
				row.Usage.CacheReadInputTokens, row.CostUSD)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// JSON writes v to w as two-space-indented JSON, preserving the
// serializer's key order.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// AnalysisTable writes a fixed-width table of activity rows to w.
func AnalysisTable(w io.Writer, byDate map[string][]aggregate.ActivityRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tMODEL\tEDIT_LINES\tREAD_LINES\tWRITE_LINES\tBASH\tEDIT\tREAD\tWRITE\tTODO")
	for _, date := range aggregate.SortedDates(byDate) {
		for _, row := range byDate[date] {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
				date, row.Model, row.EditLines, row.ReadLines, row.WriteLines,
				row.BashCount, row.EditCount, row.ReadCount, row.WriteCount, row.TodoWriteCount)
		}
	}
	return tw.Flush()
}
