package session

import (
	"context"

	"github.com/jvaldes/hucha/internal/model"
)

// MockPrompter is a scripted test implementation of the Prompter interface.
// Decisions, selections, and rule confirmations are consumed in order; an
// exhausted script falls back to skip/cancel/decline.
type MockPrompter struct {
	// Script inputs.
	Decisions    []model.Decision // consumed by ReviewSuggestion and ReviewUnmatched
	Selections   []string         // consumed by SelectCategory; "" cancels
	RuleKeywords []string         // consumed by ConfirmRule; "" declines

	// Recorded calls.
	Reviews       []Review
	Unmatched     []Review
	Applied       []MockApplyCall
	RulesOffered  []string
	StartedTotal  int
	FinishedStats model.SessionStats
	FinishedCalls int

	decisionIdx  int
	selectionIdx int
	ruleIdx      int
}

// MockApplyCall records one ApplyResult invocation.
type MockApplyCall struct {
	Err         error
	Category    string
	Transaction model.Transaction
}

// SessionStarted records the announced batch size.
func (m *MockPrompter) SessionStarted(total int) {
	m.StartedTotal = total
}

// ReviewSuggestion returns the next scripted decision.
func (m *MockPrompter) ReviewSuggestion(_ context.Context, review Review) (model.Decision, error) {
	m.Reviews = append(m.Reviews, review)
	return m.nextDecision(), nil
}

// ReviewUnmatched returns the next scripted decision.
func (m *MockPrompter) ReviewUnmatched(_ context.Context, review Review) (model.Decision, error) {
	m.Unmatched = append(m.Unmatched, review)
	return m.nextDecision(), nil
}

// SelectCategory returns the next scripted selection.
func (m *MockPrompter) SelectCategory(_ context.Context, _ []string) (string, bool, error) {
	if m.selectionIdx >= len(m.Selections) {
		return "", false, nil
	}
	selected := m.Selections[m.selectionIdx]
	m.selectionIdx++
	return selected, selected != "", nil
}

// ConfirmRule returns the next scripted keyword.
func (m *MockPrompter) ConfirmRule(_ context.Context, category, suggested string) (string, bool, error) {
	m.RulesOffered = append(m.RulesOffered, suggested)
	if m.ruleIdx >= len(m.RuleKeywords) {
		return "", false, nil
	}
	keyword := m.RuleKeywords[m.ruleIdx]
	m.ruleIdx++
	return keyword, keyword != "", nil
}

// ApplyResult records the update outcome.
func (m *MockPrompter) ApplyResult(tx model.Transaction, category string, err error) {
	m.Applied = append(m.Applied, MockApplyCall{Transaction: tx, Category: category, Err: err})
}

// SessionFinished records the closing stats.
func (m *MockPrompter) SessionFinished(stats model.SessionStats) {
	m.FinishedStats = stats
	m.FinishedCalls++
}

func (m *MockPrompter) nextDecision() model.Decision {
	if m.decisionIdx >= len(m.Decisions) {
		return model.DecisionSkip
	}
	d := m.Decisions[m.decisionIdx]
	m.decisionIdx++
	return d
}
