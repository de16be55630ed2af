// Package report builds periodic financial reports: per-category expense and
// income buckets over a time window, totals and net, and the comparison of
// those buckets against the month's budget figures.
package report

import (
	"sort"

	"github.com/jvaldes/hucha/internal/model"
)

// UncategorizedLabel is the bucket for transactions whose category id is
// absent or unknown.
const UncategorizedLabel = "Sin categoría"

// CategoryTotal is one category's accumulated amount within a report.
type CategoryTotal struct {
	Category string
	Amount   float64
}

// Report is a derived, read-only snapshot of one period.
type Report struct {
	Details          map[string][]model.Transaction
	Expenses         []CategoryTotal // descending by amount, stable on ties
	Income           []CategoryTotal
	Window           Window
	TotalIncome      float64
	TotalExpenses    float64
	Net              float64
	TransactionCount int
}

// Aggregate partitions the window-resident transactions into expense and
// income buckets keyed by resolved category name. Deleted and transfer
// transactions are excluded. Amounts arrive in milliunits and come out in
// currency units. A zero-amount transaction counts as income; this tie-break
// is observable behavior and deliberately preserved.
func Aggregate(transactions []model.Transaction, categoryNames map[string]string, window Window, withDetails bool) Report {
	rep := Report{Window: window}
	if withDetails {
		rep.Details = make(map[string][]model.Transaction)
	}

	expenses := newBuckets()
	income := newBuckets()

	for _, tx := range transactions {
		if !tx.Reportable() || !window.Contains(tx.Date) {
			continue
		}

		name := categoryNames[tx.CategoryID]
		if name == "" {
			name = UncategorizedLabel
		}

		amount := tx.Amount()
		if amount < 0 {
			expenses.add(name, -amount)
			rep.TotalExpenses += -amount
		} else {
			income.add(name, amount)
			rep.TotalIncome += amount
		}
		rep.TransactionCount++

		if withDetails {
			rep.Details[name] = append(rep.Details[name], tx)
		}
	}

	rep.Net = rep.TotalIncome - rep.TotalExpenses
	rep.Expenses = expenses.sorted()
	rep.Income = income.sorted()

	if withDetails {
		for name := range rep.Details {
			group := rep.Details[name]
			sort.SliceStable(group, func(i, j int) bool {
				return group[i].Date > group[j].Date
			})
		}
	}

	return rep
}

// buckets accumulates per-category totals while remembering first-seen order,
// which breaks ties in the final descending sort.
type buckets struct {
	totals map[string]float64
	order  []string
}

func newBuckets() *buckets {
	return &buckets{totals: make(map[string]float64)}
}

func (b *buckets) add(category string, amount float64) {
	if _, seen := b.totals[category]; !seen {
		b.order = append(b.order, category)
	}
	b.totals[category] += amount
}

func (b *buckets) sorted() []CategoryTotal {
	out := make([]CategoryTotal, 0, len(b.order))
	for _, category := range b.order {
		out = append(out, CategoryTotal{Category: category, Amount: b.totals[category]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out
}
