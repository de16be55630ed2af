package model

// SuggestionSource indicates which matcher pass produced a suggestion.
type SuggestionSource string

// Suggestion source constants.
const (
	SourceRule      SuggestionSource = "rule"
	SourceHeuristic SuggestionSource = "heuristic"
)

// Suggestion is a candidate category for an uncategorized transaction.
type Suggestion struct {
	Category string
	Source   SuggestionSource
}

// Decision is the operator's response to a presented transaction.
type Decision int

// Decision constants.
const (
	DecisionAccept Decision = iota
	DecisionChooseOther
	DecisionSkip
	DecisionQuit
)

// SessionStats summarizes a categorization session.
type SessionStats struct {
	Total       int
	Categorized int
	Skipped     int
}
