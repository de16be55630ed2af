// Package email renders the self-contained HTML financial report and
// delivers it through the Gmail API.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/jvaldes/hucha/internal/report"
)

// maxCategories bounds the expense bars shown in the artifact.
const maxCategories = 10

type categoryBar struct {
	Name    string
	Amount  float64
	Percent float64
}

type templateData struct {
	Period           string
	GeneratedAt      string
	Categories       []categoryBar
	TotalIncome      float64
	TotalExpenses    float64
	Net              float64
	TransactionCount int
	Deficit          bool
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f", v) },
}).Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Reporte YNAB - {{.Period}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
       background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 20px; min-height: 100vh; }
.container { max-width: 1200px; margin: 0 auto; }
.header { background: white; border-radius: 20px; padding: 40px; margin-bottom: 30px; }
h1 { color: #2d3748; font-size: 2.5em; margin-bottom: 10px; }
.period { color: #718096; font-size: 1.1em; }
.summary { display: grid; grid-template-columns: repeat(auto-fit, minmax(250px, 1fr)); gap: 20px; margin-bottom: 30px; }
.card { background: white; border-radius: 15px; padding: 30px; }
.card h2 { color: #4a5568; font-size: 1em; text-transform: uppercase; letter-spacing: 1px; margin-bottom: 15px; }
.amount { font-size: 2.5em; font-weight: bold; margin-bottom: 5px; }
.amount.income { color: #48bb78; }
.amount.expense { color: #f56565; }
.amount.balance { color: #667eea; }
.amount.balance.negative { color: #f56565; }
.category-list { background: white; border-radius: 15px; padding: 30px; }
.category-item { display: flex; align-items: center; padding: 15px 0; border-bottom: 1px solid #e2e8f0; }
.category-item:last-child { border-bottom: none; }
.category-name { flex: 1; font-weight: 600; color: #2d3748; }
.category-amount { margin: 0 20px; font-weight: bold; color: #4a5568; }
.category-bar { flex: 1; max-width: 300px; height: 30px; background: #edf2f7; border-radius: 15px; overflow: hidden; }
.category-bar-fill { height: 100%; background: linear-gradient(90deg, #667eea 0%, #764ba2 100%);
       border-radius: 15px; display: flex; align-items: center; justify-content: flex-end;
       padding-right: 10px; color: white; font-size: 0.85em; font-weight: bold; }
.transaction-count { background: white; border-radius: 15px; padding: 20px 30px; margin-top: 30px; text-align: center; }
.transaction-count .number { font-size: 3em; font-weight: bold; color: #667eea; }
.transaction-count .label { color: #718096; text-transform: uppercase; letter-spacing: 1px; margin-top: 5px; }
.footer { text-align: center; color: white; margin-top: 40px; opacity: 0.9; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>📊 Reporte Financiero YNAB</h1>
    <p class="period">{{.Period}}</p>
  </div>
  <div class="summary">
    <div class="card">
      <h2>💰 Ingresos</h2>
      <div class="amount income">€{{money .TotalIncome}}</div>
    </div>
    <div class="card">
      <h2>💸 Gastos</h2>
      <div class="amount expense">€{{money .TotalExpenses}}</div>
    </div>
    <div class="card">
      <h2>📈 Balance</h2>
      <div class="amount balance{{if .Deficit}} negative{{end}}">€{{money .Net}}</div>
      <p style="color: #718096; font-size: 0.9em;">{{if .Deficit}}⚠️ Déficit{{else}}✅ Superávit{{end}}</p>
    </div>
  </div>
  <div class="category-list">
    <h2 style="margin-bottom: 25px; color: #2d3748; font-size: 1.5em;">Gastos por Categoría</h2>
    {{range .Categories}}
    <div class="category-item">
      <div class="category-name">{{.Name}}</div>
      <div class="category-amount">€{{money .Amount}}</div>
      <div class="category-bar">
        <div class="category-bar-fill" style="width: {{pct .Percent}}%">{{pct .Percent}}%</div>
      </div>
    </div>
    {{end}}
  </div>
  <div class="transaction-count">
    <div class="number">{{.TransactionCount}}</div>
    <div class="label">Transacciones totales</div>
  </div>
  <div class="footer">
    <p>Generado el {{.GeneratedAt}}</p>
    <p>hucha 🏦</p>
  </div>
</div>
</body>
</html>
`))

// RenderHTML renders the report into the self-contained HTML artifact: top
// expense categories with percentage bars, summary cards, and the
// transaction count.
func RenderHTML(rep report.Report, now time.Time) (string, error) {
	data := templateData{
		Period:           rep.Window.Label(),
		TotalIncome:      rep.TotalIncome,
		TotalExpenses:    rep.TotalExpenses,
		Net:              rep.Net,
		Deficit:          rep.Net < 0,
		TransactionCount: rep.TransactionCount,
		GeneratedAt:      now.Format("02/01/2006 a las 15:04"),
	}

	for i, ct := range rep.Expenses {
		if i >= maxCategories {
			break
		}
		bar := categoryBar{Name: ct.Category, Amount: ct.Amount}
		if rep.TotalExpenses > 0 {
			bar.Percent = ct.Amount / rep.TotalExpenses * 100
		}
		data.Categories = append(data.Categories, bar)
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.String(), nil
}
