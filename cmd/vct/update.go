package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vibecoding/vct/internal/appupdate"
	"github.com/vibecoding/vct/internal/version"
)

func newUpdateCmd() *cobra.Command {
	var (
		check bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check for or apply a newer vct release",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := appupdate.Check(context.Background(), appupdate.CheckOptions{
				CurrentVersion: version.Version,
			})
			if err != nil {
				return fmt.Errorf("check for update: %w", err)
			}

			if !result.UpdateAvailable && !force {
				fmt.Printf("vct %s is up to date\n", result.CurrentVersion)
				return nil
			}

			fmt.Printf("vct %s -> %s available\n", result.CurrentVersion, result.LatestVersion)
			if check {
				return nil
			}

			fmt.Printf("run: %s\n", result.UpgradeHint)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "only report whether an update is available")
	cmd.Flags().BoolVar(&force, "force", false, "show the upgrade command even if already up to date")

	return cmd
}
