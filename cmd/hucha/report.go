package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jvaldes/hucha/internal/email"
	"github.com/jvaldes/hucha/internal/ynab"
)

func reportCmd() *cobra.Command {
	var htmlPath string
	var calendar bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the weekly and monthly financial reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client := ynab.NewClient(cfg)

			if err := showFullReport(ctx, client, cmd.OutOrStdout(), calendar); err != nil {
				return err
			}

			if htmlPath == "" {
				return nil
			}

			now := time.Now()
			weekly, err := weeklyReport(ctx, client, now)
			if err != nil {
				return fmt.Errorf("failed to build weekly report: %w", err)
			}
			artifact, err := email.RenderHTML(weekly, now)
			if err != nil {
				return err
			}
			if err := os.WriteFile(htmlPath, []byte(artifact), 0o600); err != nil {
				return fmt.Errorf("failed to write HTML report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Reporte HTML generado: %s\n", htmlPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&htmlPath, "html", "", "also write the weekly report as a self-contained HTML file")
	cmd.Flags().BoolVar(&calendar, "calendar", false, "use calendar windows (Monday-to-date, 1st-to-date) instead of rolling lookbacks")

	return cmd
}
