package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/varoOP/kinodays/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Resolve anniversaries for a film list",
	Long: `Run resolves every film on the configured list:
1. Scrapes the listing page for film links and titles
   (or reads them from a YAML watchlist via --watchlist)
2. Resolves each film's release date, cache first, network second
3. Computes the next anniversary and the next 5-year milestone
4. Writes the sorted result set under the root path

Resolution is paced: films are fetched in batches (--batch-size, default 5)
with a pause between batches (--batch-delay, default 1s).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootPath := viper.GetString("root_path")

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		if err := application.Run(context.Background(), rootPath); err != nil {
			return fmt.Errorf("run failed: %w", err)
		}

		return nil
	},
}

func init() {
	runCmd.Flags().String("list-url", "", "catalog list page to scrape for films")
	runCmd.Flags().String("watchlist", "", "YAML watchlist file to resolve instead of a list page")
	runCmd.Flags().Int("batch-size", 0, "films resolved concurrently per batch (default 5)")
	runCmd.Flags().Duration("batch-delay", 0, "pause between batches (default 1s)")

	viper.BindPFlag("list_url", runCmd.Flags().Lookup("list-url"))
	viper.BindPFlag("watchlist", runCmd.Flags().Lookup("watchlist"))
	viper.BindPFlag("batch_size", runCmd.Flags().Lookup("batch-size"))
	viper.BindPFlag("batch_delay", runCmd.Flags().Lookup("batch-delay"))

	rootCmd.AddCommand(runCmd)
}
