package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jvaldes/hucha/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#95E1D3"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
)

// Render writes a formatted report to w. When budget lines are provided the
// expense section carries budgeted/activity/available columns with a status
// marker per category; otherwise a percentage bar is shown.
func Render(w io.Writer, title string, rep Report, lines map[string]model.BudgetLine) {
	divider := strings.Repeat("=", 80)

	fmt.Fprintln(w, divider)
	fmt.Fprintln(w, titleStyle.Render("📊 "+title))
	fmt.Fprintln(w, subtleStyle.Render("   Período: "+rep.Window.Label()))
	fmt.Fprintln(w, divider)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "💰 RESUMEN:")
	fmt.Fprintf(w, "   Ingresos:  %s\n", incomeStyle.Render(fmt.Sprintf("€%10.2f", rep.TotalIncome)))
	fmt.Fprintf(w, "   Gastos:    %s\n", expenseStyle.Render(fmt.Sprintf("€%10.2f", rep.TotalExpenses)))
	balanceIcon := "✅"
	if rep.Net < 0 {
		balanceIcon = "⚠️"
	}
	fmt.Fprintf(w, "   %s Balance:  €%10.2f\n", balanceIcon, rep.Net)

	if len(rep.Expenses) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "📉 GASTOS POR CATEGORÍA:")
		if lines != nil {
			renderBudgetRows(w, rep, lines)
		} else {
			renderExpenseRows(w, rep)
		}
	}

	if len(rep.Income) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "💵 INGRESOS POR CATEGORÍA:")
		for _, ct := range rep.Income {
			if ct.Category == UncategorizedLabel {
				continue
			}
			fmt.Fprintf(w, "   %-40s €%10.2f\n", ct.Category, ct.Amount)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "📝 Transacciones: %d\n", rep.TransactionCount)
}

func renderExpenseRows(w io.Writer, rep Report) {
	fmt.Fprintf(w, "   %-40s %12s %8s\n", "Categoría", "Gastado", "%")
	fmt.Fprintln(w, "   "+strings.Repeat("-", 65))
	for _, ct := range rep.Expenses {
		pct := 0.0
		if rep.TotalExpenses > 0 {
			pct = ct.Amount / rep.TotalExpenses * 100
		}
		bar := strings.Repeat("█", min(int(pct/5), 10))
		fmt.Fprintf(w, "   %-40s €%10.2f %6.1f%% %s\n", ct.Category, ct.Amount, pct, bar)
	}
}

func renderBudgetRows(w io.Writer, rep Report, lines map[string]model.BudgetLine) {
	fmt.Fprintf(w, "   %-32s %10s %10s %11s %s\n", "Categoría", "Presup.", "Gastado", "Disponible", "Estado")
	fmt.Fprintln(w, "   "+strings.Repeat("-", 78))

	compared := make(map[string]bool)
	for _, row := range Compare(rep, lines) {
		compared[row.Category] = true
		fmt.Fprintf(w, "   %-32s €%8.2f €%8.2f €%9.2f %s\n",
			row.Category, row.Budgeted, -row.Activity, row.Available, statusMarker(row))
	}

	// Expense buckets without budget data still show up, unclassified.
	for _, ct := range rep.Expenses {
		if compared[ct.Category] {
			continue
		}
		fmt.Fprintf(w, "   %-32s %10s €%8.2f %11s ⚪\n", ct.Category, "-", ct.Amount, "-")
	}
}

func statusMarker(row Row) string {
	switch row.Status {
	case StatusOver:
		return expenseStyle.Render("🔴 Excedido")
	case StatusLow:
		return warnStyle.Render("🟡 Bajo")
	default:
		return incomeStyle.Render("🟢 OK")
	}
}
