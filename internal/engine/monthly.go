package engine

import (
	"github.com/flexibudget/budget-forecast/internal/model"
	"github.com/flexibudget/budget-forecast/pkg/growth"
	"github.com/flexibudget/budget-forecast/pkg/mathutil"
)

// Statement is one month's profit-and-loss view. Every field is always
// populated; there is no partial-failure state.
type Statement struct {
	Month              int     `json:"month"`
	Revenue            float64 `json:"revenue"`
	COGS               float64 `json:"cogs"`
	GrossProfit        float64 `json:"grossProfit"`
	FixedCosts         float64 `json:"fixedCosts"`
	SemiVariableCosts  float64 `json:"semiVariableCosts"`
	VariableCosts      float64 `json:"variableCosts"`
	MarketingCosts     float64 `json:"marketingCosts"`
	SetupCostAmortized float64 `json:"setupCostAmortized"`
	TotalCosts         float64 `json:"totalCosts"`
	NetPnL             float64 `json:"netPnL"`
	MarginPercent      float64 `json:"marginPercent"`
}

// snapshotProducts applies the configured growth rules to every product's
// unit volume and selling price for the given month, yielding the per-month
// product view every aggregator works against. The input products are never
// mutated.
func snapshotProducts(products []model.Product, month int, rates model.GrowthRates) []model.Product {
	snapshot := make([]model.Product, len(products))
	for i, p := range products {
		p.UnitsSoldPerMonth = growth.Apply(p.UnitsSoldPerMonth, month, rates.UnitsSold[p.ID])
		p.SellingPricePerUnit = growth.Apply(p.SellingPricePerUnit, month, rates.SellingPrice[p.ID])
		snapshot[i] = p
	}
	return snapshot
}

// buildMonth assembles one month's statement: grown product snapshot,
// revenue, COGS, every cost category, net P&L, and margin. The amortized
// setup charge is constant across months and computed once by the caller.
func buildMonth(month int, m *model.BusinessModel, settings model.ProjectionSettings, amortized float64) Statement {
	products := snapshotProducts(m.Products, month, settings.GrowthRates)

	revenue := totalRevenue(products)
	cogs := totalCOGS(products)
	grossProfit := revenue - cogs

	fixed := fixedTotal(m.FixedCosts, month, settings.GrowthRates.FixedCosts)
	semiVariable := semiVariableTotal(m.SemiVariableCosts, products)
	variable := variableTotal(m.VariableCosts, products, month, settings.GrowthRates.VariableCosts)
	marketing := marketingTotal(m.Marketing, products)

	totalCosts := fixed + semiVariable + variable + marketing + amortized
	netPnL := grossProfit - totalCosts

	// Margin is 0 when there is no revenue, never NaN.
	marginPercent := mathutil.SafeDivide(netPnL, revenue) * percentDivisor

	return Statement{
		Month:              month,
		Revenue:            revenue,
		COGS:               cogs,
		GrossProfit:        grossProfit,
		FixedCosts:         fixed,
		SemiVariableCosts:  semiVariable,
		VariableCosts:      variable,
		MarketingCosts:     marketing,
		SetupCostAmortized: amortized,
		TotalCosts:         totalCosts,
		NetPnL:             netPnL,
		MarginPercent:      marginPercent,
	}
}
