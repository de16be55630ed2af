// Package session implements the interactive categorization loop: it pulls
// uncategorized transactions, asks the matcher for a suggestion, routes the
// operator's decision, applies accepted categories remotely, and feeds
// accepted heuristic matches back into the rule store.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jvaldes/hucha/internal/match"
	"github.com/jvaldes/hucha/internal/model"
	"github.com/jvaldes/hucha/internal/rules"
)

// Engine orchestrates one categorization session.
type Engine struct {
	service      BudgetService
	matcher      *match.Matcher
	rules        *rules.Store
	prompter     Prompter
	now          func() time.Time
	lookbackDays int
}

// New creates a session engine. lookbackDays bounds the fetch window for
// uncategorized transactions.
func New(service BudgetService, matcher *match.Matcher, store *rules.Store, prompter Prompter, lookbackDays int) *Engine {
	return &Engine{
		service:      service,
		matcher:      matcher,
		rules:        store,
		prompter:     prompter,
		lookbackDays: lookbackDays,
		now:          time.Now,
	}
}

// Run processes the uncategorized transactions one by one, strictly in fetch
// order, and returns the session statistics. A read failure aborts the
// session; a failed per-transaction update is reported and skipped.
func (e *Engine) Run(ctx context.Context) (model.SessionStats, error) {
	var stats model.SessionStats

	categories, err := e.service.Categories(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to load categories: %w", err)
	}

	idByName := make(map[string]string, len(categories))
	names := make([]string, 0, len(categories))
	for _, cat := range categories {
		idByName[cat.Name] = cat.ID
		names = append(names, cat.Name)
	}
	sort.Strings(names)

	since := e.now().AddDate(0, 0, -e.lookbackDays).Format("2006-01-02")
	transactions, err := e.service.Uncategorized(ctx, since)
	if err != nil {
		return stats, fmt.Errorf("failed to load uncategorized transactions: %w", err)
	}

	stats.Total = len(transactions)
	if stats.Total == 0 {
		e.prompter.SessionFinished(stats)
		return stats, nil
	}

	slog.Info("starting categorization session", "since_date", since, "count", stats.Total)
	e.prompter.SessionStarted(stats.Total)

loop:
	for i, tx := range transactions {
		// Cancellation only takes effect at the transaction boundary,
		// never mid-update.
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		review := Review{Transaction: tx, Index: i + 1, Total: stats.Total}

		suggestion, ok := e.matcher.Classify(tx.PayeeName, tx.Amount(), names)
		if ok {
			if _, known := idByName[suggestion.Category]; !known {
				ok = false
			}
		}

		if !ok {
			decision, promptErr := e.prompter.ReviewUnmatched(ctx, review)
			if promptErr != nil {
				return stats, promptErr
			}
			switch decision {
			case model.DecisionQuit:
				break loop
			case model.DecisionAccept:
				selected, picked, selErr := e.prompter.SelectCategory(ctx, names)
				if selErr != nil {
					return stats, selErr
				}
				if !picked {
					stats.Skipped++
					continue
				}
				if e.apply(ctx, tx, selected, idByName) {
					stats.Categorized++
					e.offerRule(ctx, selected, tx.PayeeName)
				}
			default:
				stats.Skipped++
			}
			continue
		}

		review.Suggestion = suggestion
		decision, promptErr := e.prompter.ReviewSuggestion(ctx, review)
		if promptErr != nil {
			return stats, promptErr
		}

		chosen := suggestion.Category
		switch decision {
		case model.DecisionQuit:
			break loop
		case model.DecisionSkip:
			stats.Skipped++
			continue
		case model.DecisionChooseOther:
			selected, picked, selErr := e.prompter.SelectCategory(ctx, names)
			if selErr != nil {
				return stats, selErr
			}
			if !picked {
				stats.Skipped++
				continue
			}
			chosen = selected
		}

		if e.apply(ctx, tx, chosen, idByName) {
			stats.Categorized++
			if suggestion.Source == model.SourceHeuristic {
				e.offerRule(ctx, chosen, tx.PayeeName)
			}
		}
	}

	e.prompter.SessionFinished(stats)
	return stats, nil
}

// apply pushes a single category update to the service. Failures are
// reported to the operator and leave the transaction uncategorized; the
// session continues with the next one.
func (e *Engine) apply(ctx context.Context, tx model.Transaction, category string, idByName map[string]string) bool {
	err := e.service.AssignCategory(ctx, tx.ID, idByName[category])
	e.prompter.ApplyResult(tx, category, err)
	if err != nil {
		slog.Warn("category update failed",
			"transaction_id", tx.ID,
			"category", category,
			"error", err)
		return false
	}
	return true
}

// offerRule proposes persisting a keyword rule after an accepted heuristic or
// manual categorization. Persistence failures are logged, never fatal.
func (e *Engine) offerRule(ctx context.Context, category, payee string) {
	keyword, save, err := e.prompter.ConfirmRule(ctx, category, match.ExtractKeyword(payee))
	if err != nil {
		slog.Warn("rule confirmation failed", "error", err)
		return
	}
	if !save {
		return
	}
	if _, err := e.rules.Add(category, keyword); err != nil {
		slog.Warn("failed to persist rule", "category", category, "keyword", keyword, "error", err)
	}
}
