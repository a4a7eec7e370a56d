// Package output provides utilities for formatting and displaying
// calculation results.
package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/flexibudget/budget-forecast/internal/engine"
	"github.com/flexibudget/budget-forecast/pkg/format"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results engine.Results) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Monthly P&L ---\n")
	fmt.Printf("Month | Revenue       | COGS          | Gross Profit  | Total Costs   | Net P&L       | Margin\n")
	fmt.Printf("_____ | _____________ | _____________ | _____________ | _____________ | _____________ | ______\n")
	for _, s := range results.MonthlyPnL {
		_, _ = p.Printf("%5d | %13.2f | %13.2f | %13.2f | %13.2f | %13.2f | %s\n",
			s.Month, s.Revenue, s.COGS, s.GrossProfit, s.TotalCosts, s.NetPnL, format.Percent(s.MarginPercent))
	}

	fmt.Printf("\n--- Breakeven ---\n")
	fmt.Printf("Breakeven units:   %s\n", format.Units(results.Breakeven.BreakevenUnitsTotal))
	fmt.Printf("Breakeven revenue: %s\n", format.Currency(results.Breakeven.BreakevenRevenue))
	if results.Breakeven.MonthsToBreakeven != nil {
		fmt.Printf("Months to breakeven: %d\n", *results.Breakeven.MonthsToBreakeven)
	} else {
		fmt.Printf("Months to breakeven: not reached within horizon\n")
	}
}

// CsvString renders the monthly statements in comma-separated value format.
func CsvString(statements []engine.Statement) string {
	var builder strings.Builder

	builder.WriteString(`"month","revenue","cogs","gross profit","fixed costs","semi-variable costs","variable costs","marketing costs","setup amortized","total costs","net pnl","margin percent"`)
	builder.WriteString("\n")

	for _, s := range statements {
		builder.WriteString(fmt.Sprintf(`"%d","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
			s.Month, s.Revenue, s.COGS, s.GrossProfit, s.FixedCosts, s.SemiVariableCosts,
			s.VariableCosts, s.MarketingCosts, s.SetupCostAmortized, s.TotalCosts, s.NetPnL, s.MarginPercent))
		builder.WriteString("\n")
	}

	return builder.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results engine.Results) {
	fmt.Print(CsvString(results.MonthlyPnL))
}
