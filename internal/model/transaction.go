// Package model defines the core domain models used throughout the application.
package model

// Transaction represents a single transaction as reported by the budget service.
type Transaction struct {
	ID                string
	Date              string // YYYY-MM-DD; fixed width, safe to compare lexically
	PayeeName         string
	Memo              string
	AccountName       string
	CategoryID        string // empty when uncategorized
	TransferAccountID string // non-empty marks an internal transfer
	Milliunits        int64  // signed amount, currency units x1000
	Deleted           bool
}

// Amount returns the transaction amount in currency units.
func (t Transaction) Amount() float64 {
	return float64(t.Milliunits) / 1000
}

// Reportable reports whether the transaction belongs in categorization and
// reports. Deleted transactions and internal transfers never do.
func (t Transaction) Reportable() bool {
	return !t.Deleted && t.TransferAccountID == ""
}

// Uncategorized reports whether the transaction still needs a category.
func (t Transaction) Uncategorized() bool {
	return t.CategoryID == "" && t.Reportable()
}
