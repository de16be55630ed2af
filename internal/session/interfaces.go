package session

import (
	"context"

	"github.com/jvaldes/hucha/internal/model"
)

// BudgetService is the slice of the budget client the session needs.
type BudgetService interface {
	Categories(ctx context.Context) ([]model.Category, error)
	Uncategorized(ctx context.Context, sinceDate string) ([]model.Transaction, error)
	AssignCategory(ctx context.Context, transactionID, categoryID string) error
}

// Review is one transaction presented to the operator, with its suggestion
// when a matcher pass produced one.
type Review struct {
	Transaction model.Transaction
	Suggestion  model.Suggestion
	Index       int // 1-based position within the batch
	Total       int
}

// Prompter is the interaction surface of the session. Implementations
// translate operator responses into decisions; the engine owns every state
// transition and never touches the terminal, which keeps it testable.
type Prompter interface {
	// SessionStarted announces the batch size before the first review.
	SessionStarted(total int)

	// ReviewSuggestion presents a suggested category for confirmation.
	ReviewSuggestion(ctx context.Context, review Review) (model.Decision, error)

	// ReviewUnmatched presents a transaction with no suggestion.
	// DecisionAccept means the operator wants to categorize it manually.
	ReviewUnmatched(ctx context.Context, review Review) (model.Decision, error)

	// SelectCategory asks for a 1-based pick from the list. ok is false when
	// the operator cancels (blank or out-of-range input).
	SelectCategory(ctx context.Context, categories []string) (selected string, ok bool, err error)

	// ConfirmRule offers persisting a keyword rule for the category, with an
	// editable default keyword. save is false when declined.
	ConfirmRule(ctx context.Context, category, suggestedKeyword string) (keyword string, save bool, err error)

	// ApplyResult reports the outcome of one category update.
	ApplyResult(transaction model.Transaction, category string, err error)

	// SessionFinished shows the closing summary.
	SessionFinished(stats model.SessionStats)
}
