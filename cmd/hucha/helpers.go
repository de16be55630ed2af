package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jvaldes/hucha/internal/config"
	"github.com/jvaldes/hucha/internal/report"
	"github.com/jvaldes/hucha/internal/ynab"
)

// loadConfig materializes and validates the configuration. Missing
// credentials fail here, before any core logic runs.
func loadConfig() (config.Config, error) {
	cfg := config.FromViper()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// categoryNames builds the id→name map used to resolve transaction buckets.
func categoryNames(ctx context.Context, client *ynab.Client) (map[string]string, error) {
	categories, err := client.Categories(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}
	return names, nil
}

// weeklyReport fetches and aggregates the last week of transactions.
func weeklyReport(ctx context.Context, client *ynab.Client, now time.Time) (report.Report, error) {
	window := report.LastWeeks(1, now)
	transactions, err := client.Transactions(ctx, window.StartDate())
	if err != nil {
		return report.Report{}, err
	}
	names, err := categoryNames(ctx, client)
	if err != nil {
		return report.Report{}, err
	}
	return report.Aggregate(transactions, names, window, false), nil
}

// showFullReport renders the weekly report and the monthly
// budget-vs-activity report. calendar switches from rolling lookback
// windows to calendar-aligned ones (Monday-to-date, 1st-to-date). A failed
// month budget fetch degrades to a report without budget columns; a failed
// transaction fetch is fatal.
func showFullReport(ctx context.Context, client *ynab.Client, w io.Writer, calendar bool) error {
	now := time.Now()
	weeklyWindow := report.LastWeeks(1, now)
	monthlyWindow := report.LastWeeks(4, now)
	if calendar {
		weeklyWindow = report.CalendarWeek(now)
		monthlyWindow = report.CalendarMonth(now)
	}

	// A calendar week can start before the calendar month; fetch from
	// whichever window opens first.
	fetchSince := monthlyWindow.StartDate()
	if weeklyWindow.StartDate() < fetchSince {
		fetchSince = weeklyWindow.StartDate()
	}

	transactions, err := client.Transactions(ctx, fetchSince)
	if err != nil {
		return fmt.Errorf("failed to fetch transactions for report: %w", err)
	}
	names, err := categoryNames(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to fetch categories for report: %w", err)
	}

	weekly := report.Aggregate(transactions, names, weeklyWindow, false)
	report.Render(w, "REPORTE SEMANAL", weekly, nil)

	budget, err := client.MonthBudget(ctx, report.MonthKey(now))
	if err != nil {
		slog.Warn("month budget unavailable, reporting without budget columns", "error", err)
		budget = nil
	}

	monthly := report.Aggregate(transactions, names, monthlyWindow, false)
	report.Render(w, "REPORTE MENSUAL (Presupuesto vs Actividad)", monthly, budget)

	return nil
}
