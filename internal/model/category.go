package model

// Category represents a budget category. The name doubles as the lookup key
// throughout the application; the ID is the service's opaque identifier.
type Category struct {
	ID     string
	Name   string
	Hidden bool
}

// BudgetLine holds the per-category figures for one budget month. Amounts are
// in currency units (already divided by 1000).
type BudgetLine struct {
	CategoryID string
	Budgeted   float64
	Activity   float64
	Available  float64
}
