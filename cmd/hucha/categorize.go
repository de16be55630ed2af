package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jvaldes/hucha/internal/cli"
	"github.com/jvaldes/hucha/internal/match"
	"github.com/jvaldes/hucha/internal/rules"
	"github.com/jvaldes/hucha/internal/session"
	"github.com/jvaldes/hucha/internal/ynab"
)

func categorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Interactively categorize uncategorized transactions",
		Long: `Fetches uncategorized transactions from the lookback window and walks
through them one by one: keyword rules first, heuristic suggestions second,
with a confirmation prompt for each. Accepted heuristic matches can be
persisted as new rules.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			client := ynab.NewClient(cfg)
			store := rules.Load(cfg.RulesFile)
			matcher := match.New(store)
			prompter := cli.NewPrompter(cmd.InOrStdin(), out)

			engine := session.New(client, matcher, store, prompter, cfg.LookbackDays)
			stats, err := engine.Run(ctx)
			if err != nil {
				return err
			}

			slog.Info("categorization session complete",
				"total", stats.Total,
				"categorized", stats.Categorized,
				"skipped", stats.Skipped)

			fmt.Fprintln(out, "\n📊 REPORTE POST-CATEGORIZACIÓN")
			return showFullReport(ctx, client, out, false)
		},
	}

	cmd.Flags().Int("lookback", 30, "days back to search for uncategorized transactions")
	_ = viper.BindPFlag("categorize.lookback_days", cmd.Flags().Lookup("lookback"))

	return cmd
}
