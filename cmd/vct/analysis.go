package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vibecoding/vct/internal/aggregate"
	"github.com/vibecoding/vct/internal/cache"
	"github.com/vibecoding/vct/internal/engine"
	"github.com/vibecoding/vct/internal/render"
	"github.com/vibecoding/vct/internal/tui"
)

func newAnalysisCmd() *cobra.Command {
	var (
		path    string
		output  string
		asTable bool
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "analysis",
		Short: "Show per-session activity: file operations and tool invocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			bare := path == "" && !all && !asTable && output == ""

			// No --path, no --all, no --table, no --output, and stdout is a
			// terminal: launch the live per-(date,model) activity view.
			if bare && render.IsTerminal(os.Stdout) {
				eng, err := engine.New(slog.Default())
				if err != nil {
					return err
				}
				p := tea.NewProgram(tui.NewAnalysis(eng), tea.WithAltScreen())
				_, err = p.Run()
				return err
			}

			pc := cache.New(cache.DefaultCapacity)

			var payload any
			var byDate map[string][]aggregate.ActivityRow

			switch {
			case path != "":
				analysis, err := aggregate.SingleFile(pc, path)
				if err != nil {
					return err
				}
				payload = analysis

			case all:
				files, err := aggregate.ScanAll(pc)
				if err != nil {
					return err
				}
				payload = aggregate.ProviderGrouped(files)

			default:
				files, err := aggregate.ScanAll(pc)
				if err != nil {
					return err
				}
				byDate = aggregate.Analysis(files)
				payload = byDate
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			switch {
			case byDate != nil && (asTable || (bare && !render.IsTerminal(os.Stdout))):
				return render.AnalysisTable(out, byDate)
			case byDate != nil && output != "":
				// spec: --output writes the aggregator result as a flat JSON array.
				payload = aggregate.FlattenActivity(byDate)
			}
			return render.JSON(out, payload)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "analyze exactly one session file")
	cmd.Flags().StringVar(&output, "output", "", "write JSON output to this path instead of stdout")
	cmd.Flags().BoolVar(&asTable, "table", false, "render a static table instead of JSON")
	cmd.Flags().BoolVar(&all, "all", false, "group complete analyses by provider for archival export")

	return cmd
}
