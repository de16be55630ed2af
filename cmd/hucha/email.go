package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jvaldes/hucha/internal/email"
	"github.com/jvaldes/hucha/internal/ynab"
)

func emailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "email",
		Short: "Send the weekly HTML report by email",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateEmail(); err != nil {
				return err
			}

			ctx := cmd.Context()
			client := ynab.NewClient(cfg)

			now := time.Now()
			weekly, err := weeklyReport(ctx, client, now)
			if err != nil {
				return fmt.Errorf("failed to build weekly report: %w", err)
			}

			artifact, err := email.RenderHTML(weekly, now)
			if err != nil {
				return err
			}

			subject := "📊 Reporte financiero semanal - " + weekly.Window.Label()
			sender := email.NewSender(cfg.Email)
			if err := sender.Send(ctx, subject, artifact); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Reporte enviado a %s\n", cfg.Email.To)
			return nil
		},
	}
}
