package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vibecoding/vct/internal/engine"
	"github.com/vibecoding/vct/internal/render"
	"github.com/vibecoding/vct/internal/tui"
)

func newUsageCmd() *cobra.Command {
	var (
		asTable bool
		asText  bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show priced token usage per day and model",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := engine.New(slog.Default())
			if err != nil {
				return err
			}

			switch {
			case asJSON:
				snap, err := eng.RefreshAll()
				if err != nil {
					return err
				}
				return render.JSON(os.Stdout, snap.Usage)

			case asText:
				snap, err := eng.RefreshAll()
				if err != nil {
					return err
				}
				return render.UsageText(os.Stdout, snap.Usage)

			case asTable, !render.IsTerminal(os.Stdout):
				snap, err := eng.RefreshAll()
				if err != nil {
					return err
				}
				return render.UsageTable(os.Stdout, snap.Usage)

			default:
				p := tea.NewProgram(tui.New(eng), tea.WithAltScreen())
				_, err := p.Run()
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "render a static table instead of the live view")
	cmd.Flags().BoolVar(&asText, "text", false, "render plain text lines")
	cmd.Flags().BoolVar(&asJSON, "json", false, "render pretty-printed JSON")

	return cmd
}
