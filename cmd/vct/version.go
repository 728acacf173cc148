package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibecoding/vct/internal/render"
	"github.com/vibecoding/vct/internal/version"
)

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print vct's version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return render.JSON(os.Stdout, map[string]string{
					"version":    version.Version,
					"commitHash": version.CommitHash,
					"buildDate":  version.BuildDate,
				})
			}
			fmt.Println(version.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print version metadata as JSON")
	cmd.Flags().Bool("text", true, "print version metadata as plain text (default)")

	return cmd
}
