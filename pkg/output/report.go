package output

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/flexibudget/budget-forecast/internal/engine"
	"github.com/flexibudget/budget-forecast/internal/model"
	"github.com/flexibudget/budget-forecast/pkg/format"
)

// reportTableMonths caps the P&L table in the printable report; longer
// horizons stay available in the CSV export.
const reportTableMonths = 12

// HTMLReport renders a printable HTML report: summary cards, breakeven grid,
// product table, and the first year of the monthly P&L.
func HTMLReport(results engine.Results, products []model.Product, businessName string) string {
	var b strings.Builder

	profitClass := "profit"
	if results.NetPnL < 0 {
		profitClass = "loss"
	}

	b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>budget-forecast report</title>
<style>
body { font-family: sans-serif; padding: 40px; color: #1e293b; }
.header { border-bottom: 2px solid #10b981; padding-bottom: 16px; margin-bottom: 24px; }
.cards { display: grid; grid-template-columns: repeat(4, 1fr); gap: 16px; margin-bottom: 24px; }
.card { padding: 16px; border: 1px solid #e2e8f0; border-radius: 8px; }
.card .label { font-size: 12px; color: #64748b; }
.card .value { font-size: 22px; font-weight: 700; }
.card.profit .value { color: #10b981; }
.card.loss .value { color: #ef4444; }
table { width: 100%; border-collapse: collapse; font-size: 14px; margin-bottom: 24px; }
th { background: #1e293b; color: #fff; padding: 8px; text-align: left; }
td { padding: 8px; border-bottom: 1px solid #e2e8f0; }
td.num { text-align: right; }
.profit-value { color: #10b981; font-weight: 600; }
.loss-value { color: #ef4444; font-weight: 600; }
.footer { margin-top: 32px; color: #94a3b8; font-size: 12px; text-align: center; }
</style>
</head>
<body>
`)

	b.WriteString(`<div class="header"><h1>Profit &amp; Loss Projection</h1>`)
	if businessName != "" {
		fmt.Fprintf(&b, `<p>%s</p>`, html.EscapeString(businessName))
	}
	fmt.Fprintf(&b, `<p>Generated on %s</p></div>`, time.Now().Format("2 January 2006"))
	b.WriteString("\n")

	// Headline cards (month-1 summary fields).
	b.WriteString(`<div class="cards">`)
	fmt.Fprintf(&b, `<div class="card %s"><div class="label">Net P&amp;L</div><div class="value">%s</div></div>`,
		profitClass, format.Currency(results.NetPnL))
	fmt.Fprintf(&b, `<div class="card"><div class="label">Total Revenue</div><div class="value">%s</div></div>`,
		format.Currency(results.TotalRevenue))
	fmt.Fprintf(&b, `<div class="card"><div class="label">Gross Profit</div><div class="value">%s</div></div>`,
		format.Currency(results.GrossProfit))
	fmt.Fprintf(&b, `<div class="card"><div class="label">Net Margin</div><div class="value">%s</div></div>`,
		format.Percent(results.NetMarginPercent))
	b.WriteString("</div>\n")

	// Breakeven section.
	b.WriteString(`<h2>Breakeven Analysis</h2><div class="cards">`)
	fmt.Fprintf(&b, `<div class="card"><div class="label">Breakeven Units</div><div class="value">%s</div></div>`,
		format.Units(results.Breakeven.BreakevenUnitsTotal))
	fmt.Fprintf(&b, `<div class="card"><div class="label">Breakeven Revenue</div><div class="value">%s</div></div>`,
		format.Currency(results.Breakeven.BreakevenRevenue))
	monthsLabel := "N/A"
	if results.Breakeven.MonthsToBreakeven != nil {
		monthsLabel = fmt.Sprintf("%d", *results.Breakeven.MonthsToBreakeven)
	}
	fmt.Fprintf(&b, `<div class="card"><div class="label">Months to Breakeven</div><div class="value">%s</div></div>`, monthsLabel)
	b.WriteString("</div>\n")

	// Product table.
	if len(products) > 0 {
		b.WriteString(`<h2>Products</h2><table><thead><tr><th>Product</th><th>Price/Unit</th><th>Units/Month</th><th>Revenue</th></tr></thead><tbody>`)
		for _, p := range products {
			fmt.Fprintf(&b, `<tr><td>%s</td><td class="num">%s</td><td class="num">%s</td><td class="num">%s</td></tr>`,
				html.EscapeString(p.Name),
				format.Currency(p.SellingPricePerUnit),
				format.Units(p.UnitsSoldPerMonth),
				format.Currency(p.Revenue()))
		}
		b.WriteString("</tbody></table>\n")
	}

	// Monthly P&L table, first year only.
	b.WriteString(`<h2>Monthly P&amp;L Statement</h2><table><thead><tr><th>Month</th><th>Revenue</th><th>COGS</th><th>Gross Profit</th><th>Total Costs</th><th>Net P&amp;L</th><th>Margin</th></tr></thead><tbody>`)
	for i, s := range results.MonthlyPnL {
		if i >= reportTableMonths {
			break
		}
		pnlClass := "profit-value"
		if s.NetPnL < 0 {
			pnlClass = "loss-value"
		}
		fmt.Fprintf(&b, `<tr><td>Month %d</td><td class="num">%s</td><td class="num">%s</td><td class="num">%s</td><td class="num">%s</td><td class="num %s">%s</td><td class="num">%s</td></tr>`,
			s.Month,
			format.Currency(s.Revenue),
			format.Currency(s.COGS),
			format.Currency(s.GrossProfit),
			format.Currency(s.TotalCosts),
			pnlClass,
			format.Currency(s.NetPnL),
			format.Percent(s.MarginPercent))
	}
	b.WriteString("</tbody></table>\n")

	b.WriteString(`<div class="footer"><p>Generated for planning purposes only. Consult a financial advisor for business decisions.</p></div>
</body>
</html>
`)

	return b.String()
}
