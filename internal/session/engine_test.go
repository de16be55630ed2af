package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvaldes/hucha/internal/match"
	"github.com/jvaldes/hucha/internal/model"
	"github.com/jvaldes/hucha/internal/rules"
)

// stubService is a scripted BudgetService.
type stubService struct {
	categories      []model.Category
	transactions    []model.Transaction
	categoriesErr   error
	transactionsErr error
	assignErr       map[string]error // by transaction id

	assigned  []assignCall
	sinceDate string
}

type assignCall struct {
	transactionID string
	categoryID    string
}

func (s *stubService) Categories(_ context.Context) ([]model.Category, error) {
	return s.categories, s.categoriesErr
}

func (s *stubService) Uncategorized(_ context.Context, sinceDate string) ([]model.Transaction, error) {
	s.sinceDate = sinceDate
	return s.transactions, s.transactionsErr
}

func (s *stubService) AssignCategory(_ context.Context, transactionID, categoryID string) error {
	s.assigned = append(s.assigned, assignCall{transactionID: transactionID, categoryID: categoryID})
	return s.assignErr[transactionID]
}

func budgetCategories() []model.Category {
	return []model.Category{
		{ID: "cat-super", Name: "Supermercado"},
		{ID: "cat-subs", Name: "Suscripciones"},
		{ID: "cat-rest", Name: "Restaurantes y bares"},
		{ID: "cat-hogar", Name: "Hogar"},
	}
}

func newTestEngine(t *testing.T, service *stubService, prompter *MockPrompter) (*Engine, *rules.Store) {
	t.Helper()
	store := rules.Load(filepath.Join(t.TempDir(), "rules.json"))
	return New(service, match.New(store), store, prompter, 30), store
}

func TestEngine_NothingToCategorize(t *testing.T) {
	service := &stubService{categories: budgetCategories()}
	prompter := &MockPrompter{}
	engine, _ := newTestEngine(t, service, prompter)

	stats, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.SessionStats{}, stats)
	assert.Equal(t, 1, prompter.FinishedCalls)
	assert.Zero(t, prompter.StartedTotal)
	assert.Empty(t, prompter.Reviews)
	assert.Empty(t, service.assigned)
}

func TestEngine_CategoriesFetchFailureIsFatal(t *testing.T) {
	service := &stubService{categoriesErr: errors.New("api down")}
	engine, _ := newTestEngine(t, service, &MockPrompter{})

	_, err := engine.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load categories")
}

func TestEngine_TransactionsFetchFailureIsFatal(t *testing.T) {
	service := &stubService{
		categories:      budgetCategories(),
		transactionsErr: errors.New("api down"),
	}
	engine, _ := newTestEngine(t, service, &MockPrompter{})

	_, err := engine.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load uncategorized transactions")
}

func TestEngine_AcceptRuleSuggestion(t *testing.T) {
	service := &stubService{
		categories: budgetCategories(),
		transactions: []model.Transaction{
			{ID: "t1", Date: "2026-08-20", PayeeName: "MERCADONA VALENCIA", Milliunits: -45000},
		},
	}
	prompter := &MockPrompter{Decisions: []model.Decision{model.DecisionAccept}}
	engine, _ := newTestEngine(t, service, prompter)

	stats, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.SessionStats{Total: 1, Categorized: 1}, stats)
	require.Len(t, service.assigned, 1)
	assert.Equal(t, assignCall{transactionID: "t1", categoryID: "cat-super"}, service.assigned[0])

	require.Len(t, prompter.Reviews, 1)
	assert.Equal(t, "Supermercado", prompter.Reviews[0].Suggestion.Category)
	assert.Equal(t, model.SourceRule, prompter.Reviews[0].Suggestion.Source)

	// Rule-based matches never trigger a rule offer: the rule already exists.
	assert.Empty(t, prompter.RulesOffered)
	assert.Equal(t, 1, prompter.FinishedCalls)
}

func TestEngine_AcceptedHeuristicOffersRule(t *testing.T) {
	service := &stubService{
		categories: budgetCategories(),
		transactions: []model.Transaction{
			{ID: "t1", Date: "2026-08-20", PayeeName: "COCINA CREATIVA", Milliunits: -22000},
		},
	}
	prompter := &MockPrompter{
		Decisions:    []model.Decision{model.DecisionAccept},
		RuleKeywords: []string{"cocina"},
	}
	engine, store := newTestEngine(t, service, prompter)

	stats, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.SessionStats{Total: 1, Categorized: 1}, stats)

	require.Len(t, prompter.Reviews, 1)
	assert.Equal(t, model.SourceHeuristic, prompter.Reviews[0].Suggestion.Source)

	require.Len(t, prompter.RulesOffered, 1)
	assert.Equal(t, "cocina", prompter.RulesOffered[0])
	assert.Contains(t, store.Keywords("Restaurantes y bares"), "cocina")
}

func TestEngine_DeclinedRuleOfferPersistsNothing(t *testing.T) {
	service := &stubService{
		categories: budgetCategories(),
		transactions: []model.Transaction{
			{ID: "t1", Date: "2026-08-20", PayeeName: "COCINA CREATIVA", Milliunits: -22000},
		},
	}
	prompter := &MockPrompter{
		Decisions:    []model.Decision{model.DecisionAccept},
		RuleKeywords: []string{""}, // decline
	}
	engine, store := newTestEngine(t, service, prompter)

	stats, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Categorized)
	assert.NotContains(t, store.Keywords("Restaurantes y bares"), "cocina")
}

func TestEngine_QuitStopsMidBatch(t *testing.T) {
	var transactions []model.Transaction
	for _, id := range []string{"t1", "t2", "t3", "t4", "t5"} {
		transactions = append(transactions, model.Transaction{
			ID: id, Date: "2026-08-20", PayeeName: "MERCADONA", Milliunits: -10000,
		})
	}
	service := &stubService{categories: budgetCategories(), transactions: transactions}
	prompter := &MockPrompter{
		Decisions: []model.Decision{model.DecisionAccept, model.DecisionQuit},
	}
	engine, _ := newTestEngine(t, service, prompter)

	stats, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.SessionStats{Total: 5, Categorized: 1}, stats)
	assert.Len(t, service.assigned, 1)
	assert.Len(t, prompter.Reviews, 2)
	assert.Equal(t, 1, prompter.FinishedCalls)
}

func TestEngine_SkipLeavesTransactionUntouched(t *testing.T) {
	service := &stubService{
		categories: budgetCategories(),
		transactions: []model.Transaction{
			{ID: "t1", Date: "2026-08-20", PayeeName: "MERCADONA", Milliunits: -10000},
			{ID: "t2", Date: "2026-08-21", PayeeName: "NETFLIX", Milliunits: -12000},
		},
	}
	prompter := &MockPrompter{
		Decisions: []model.Decision{model.DecisionSkip, model.DecisionAccept},
	}
	engine, _ := newTestEngine(t, service, prompter)

	stats, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.SessionStats{Total: 2, Categorized: 1, Skipped: 1}, stats)
	require.Len(t, service.assigned, 1)
	assert.Equal(t, "t2", service.assigned[0].transactionID)
}

func TestEngine_ChooseOtherCategory(t *testing.T) {
	service := &stubService{
		categories: budgetCategories(),
		transactions: []model.Transaction{
			{ID: "t1", Date: "2026-08-20", PayeeName: "MERCADONA", Milliunits: -10000},
		},
	}
	prompter := &MockPrompter{
		Decisions:  []model.Decision{model.DecisionChooseOther},
		Selections: []string{"Hogar"},
	}
	engine, _ := newTestEngine(t, service, prompter)

	stats, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Categorized)
	require.Len(t, service.assigned, 1)
	assert.Equal(t, "cat-hogar", service.assigned[0].categoryID)
}

func TestEngine_CancelledSelectionCountsAsSkip(t *testing.T) {
	service := &stubService{
		categories: budgetCategories(),
		transactions: []model.Transaction{
			{ID: "t1", Date: "2026-08-20", PayeeName: "MERCADONA", Milliunits: -10000},
		},
	}
	prompter := &MockPrompter{
		Decisions:  []model.Decision{model.DecisionChooseOther},
		Selections: []string{""}, // cancel
	}
	engine, _ := newTestEngine(t, service, prompter)

	stats, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.SessionStats{Total: 1, Skipped: 1}, stats)
	assert.Empty(t, service.assigned)
}

func TestEngine_FailedUpdateIsNotCounted(t *testing.T) {
	service := &stubService{
		categories: budgetCategories(),
		transactions: []model.Transaction{
			{ID: "t1", Date: "2026-08-20", PayeeName: "MERCADONA", Milliunits: -10000},
			{ID: "t2", Date: "2026-08-21", PayeeName: "MERCADONA", Milliunits: -20000},
		},
		assignErr: map[string]error{"t1": errors.New("update rejected")},
	}
	prompter := &MockPrompter{
		Decisions: []model.Decision{model.DecisionAccept, model.DecisionAccept},
	}
	engine, _ := newTestEngine(t, service, prompter)

	stats, err := engine.Run(context.Background())

	// A per-transaction failure is reported, not fatal.
	require.NoError(t, err)
	assert.Equal(t, model.SessionStats{Total: 2, Categorized: 1}, stats)
	require.Len(t, prompter.Applied, 2)
	assert.Error(t, prompter.Applied[0].Err)
	assert.NoError(t, prompter.Applied[1].Err)
}

func TestEngine_UnmatchedManualCategorization(t *testing.T) {
	service := &stubService{
		categories: budgetCategories(),
		transactions: []model.Transaction{
			{ID: "t1", Date: "2026-08-20", PayeeName: "XYZZY CORP", Milliunits: -99000},
		},
	}
	prompter := &MockPrompter{
		Decisions:    []model.Decision{model.DecisionAccept}, // categorize manually
		Selections:   []string{"Hogar"},
		RuleKeywords: []string{"xyzzy"},
	}
	engine, store := newTestEngine(t, service, prompter)

	stats, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.SessionStats{Total: 1, Categorized: 1}, stats)
	require.Len(t, prompter.Unmatched, 1)
	assert.Empty(t, prompter.Reviews)
	require.Len(t, service.assigned, 1)
	assert.Equal(t, "cat-hogar", service.assigned[0].categoryID)

	// Manual categorization offers a rule too.
	require.Len(t, prompter.RulesOffered, 1)
	assert.Equal(t, "xyzzy", prompter.RulesOffered[0])
	assert.Contains(t, store.Keywords("Hogar"), "xyzzy")
}

func TestEngine_UnmatchedDefaultIsSkip(t *testing.T) {
	service := &stubService{
		categories: budgetCategories(),
		transactions: []model.Transaction{
			{ID: "t1", Date: "2026-08-20", PayeeName: "XYZZY CORP", Milliunits: -99000},
		},
	}
	prompter := &MockPrompter{Decisions: []model.Decision{model.DecisionSkip}}
	engine, _ := newTestEngine(t, service, prompter)

	stats, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.SessionStats{Total: 1, Skipped: 1}, stats)
	assert.Empty(t, service.assigned)
}

func TestEngine_UnmatchedQuit(t *testing.T) {
	service := &stubService{
		categories: budgetCategories(),
		transactions: []model.Transaction{
			{ID: "t1", Date: "2026-08-20", PayeeName: "XYZZY CORP", Milliunits: -99000},
			{ID: "t2", Date: "2026-08-21", PayeeName: "MERCADONA", Milliunits: -10000},
		},
	}
	prompter := &MockPrompter{Decisions: []model.Decision{model.DecisionQuit}}
	engine, _ := newTestEngine(t, service, prompter)

	stats, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.SessionStats{Total: 2}, stats)
	assert.Len(t, prompter.Unmatched, 1)
	assert.Empty(t, prompter.Reviews)
}

func TestEngine_SuggestionOutsideBudgetFallsBackToUnmatched(t *testing.T) {
	// The rule table knows "farmacia", but the budget has no matching
	// category, so the engine must treat the transaction as unmatched.
	service := &stubService{
		categories: budgetCategories(),
		transactions: []model.Transaction{
			{ID: "t1", Date: "2026-08-20", PayeeName: "FARMACIA CENTRAL", Milliunits: -8500},
		},
	}
	prompter := &MockPrompter{Decisions: []model.Decision{model.DecisionSkip}}
	engine, _ := newTestEngine(t, service, prompter)

	stats, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.SessionStats{Total: 1, Skipped: 1}, stats)
	assert.Len(t, prompter.Unmatched, 1)
	assert.Empty(t, prompter.Reviews)
}

func TestEngine_ContextCancellationStopsAtBoundary(t *testing.T) {
	service := &stubService{
		categories: budgetCategories(),
		transactions: []model.Transaction{
			{ID: "t1", Date: "2026-08-20", PayeeName: "MERCADONA", Milliunits: -10000},
		},
	}
	engine, _ := newTestEngine(t, service, &MockPrompter{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, service.assigned)
}

func TestEngine_LookbackWindowDrivesSinceDate(t *testing.T) {
	service := &stubService{categories: budgetCategories()}
	engine, _ := newTestEngine(t, service, &MockPrompter{})
	engine.now = func() time.Time {
		return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	}

	_, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2026-07-29", service.sinceDate)
}
