// Command vct scans local AI coding-assistant session logs, prices
// token usage against a remote pricing catalog, and renders aggregate
// usage and activity views.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if os.Getenv("VCT_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vct",
		Short: "Vibe Coding Tracker: local telemetry for AI coding assistants",
	}

	cmd.AddCommand(newUsageCmd())
	cmd.AddCommand(newAnalysisCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newUpdateCmd())

	return cmd
}
