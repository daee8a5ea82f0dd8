package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/varoOP/kinodays/internal/app"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove expired entries from the release-date cache",
	Long: `Prune deletes cache entries whose last fetch is older than the
24-hour validity window. Runs never read these entries, so pruning only
reclaims space.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		if err := application.PruneCache(context.Background()); err != nil {
			return fmt.Errorf("prune failed: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}
