package report

import (
	"math"
	"sort"

	"github.com/jvaldes/hucha/internal/model"
)

// InflowLabel is the service's ready-to-assign pseudo-category. It is never a
// real spending category and is excluded from comparison.
const InflowLabel = "Inflow: Ready to Assign"

// Status classifies a category's budget health for the month.
type Status string

// Budget status constants.
const (
	StatusOK   Status = "ok"
	StatusLow  Status = "low"
	StatusOver Status = "over"
)

// Row pairs one category's report activity with the month's budget figures.
type Row struct {
	Category  string
	Status    Status
	Budgeted  float64
	Activity  float64
	Available float64
	Progress  float64 // percent of budget consumed; 100 when unbudgeted
}

// Classify is a pure function of the budget figures: over when the available
// balance is negative, low when under 20% of a positive budget remains.
func Classify(budgeted, available float64) Status {
	switch {
	case available < 0:
		return StatusOver
	case budgeted > 0 && available < budgeted*0.2:
		return StatusLow
	default:
		return StatusOK
	}
}

// Compare merges the report's expense buckets with the month's budget lines.
// Only categories present in both appear; the inflow pseudo-category and the
// uncategorized bucket never do. Rows come back ascending by activity, so the
// biggest expense (most negative activity) leads.
func Compare(rep Report, lines map[string]model.BudgetLine) []Row {
	var rows []Row
	for _, ct := range rep.Expenses {
		if ct.Category == UncategorizedLabel || ct.Category == InflowLabel {
			continue
		}
		line, ok := lines[ct.Category]
		if !ok {
			continue
		}

		progress := 100.0
		if line.Budgeted > 0 {
			progress = math.Abs(line.Activity) / line.Budgeted * 100
		}

		rows = append(rows, Row{
			Category:  ct.Category,
			Budgeted:  line.Budgeted,
			Activity:  line.Activity,
			Available: line.Available,
			Status:    Classify(line.Budgeted, line.Available),
			Progress:  progress,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Activity < rows[j].Activity
	})
	return rows
}
