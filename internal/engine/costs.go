package engine

import (
	"github.com/flexibudget/budget-forecast/internal/model"
	"github.com/flexibudget/budget-forecast/pkg/growth"
)

// totalUnits sums the current-month unit volume across all products.
func totalUnits(products []model.Product) float64 {
	total := 0.0
	for _, p := range products {
		total += p.UnitsSoldPerMonth
	}
	return total
}

// totalRevenue sums the current-month revenue across all products.
func totalRevenue(products []model.Product) float64 {
	total := 0.0
	for _, p := range products {
		total += p.Revenue()
	}
	return total
}

// totalCOGS sums units * per-unit direct cost across all products. Products
// without a COGS breakdown contribute zero.
func totalCOGS(products []model.Product) float64 {
	total := 0.0
	for _, p := range products {
		total += p.COGSPerUnit.PerUnit() * p.UnitsSoldPerMonth
	}
	return total
}

// unitsForReference resolves a product-or-all reference against the current
// month's product snapshot. A reference to a product id that no longer exists
// degrades to zero units, never an error.
func unitsForReference(ref string, products []model.Product) float64 {
	if ref == model.AllProducts || ref == model.AllProductsCombined {
		return totalUnits(products)
	}
	for _, p := range products {
		if p.ID == ref {
			return p.UnitsSoldPerMonth
		}
	}
	return 0
}

// revenueForReference resolves a revenue reference analogously: the sentinel
// uses the grand total, a product id uses that product's own revenue, and a
// dangling id contributes zero.
func revenueForReference(ref string, products []model.Product) float64 {
	if ref == model.TotalRevenue {
		return totalRevenue(products)
	}
	for _, p := range products {
		if p.ID == ref {
			return p.Revenue()
		}
	}
	return 0
}

// amortizedSetup spreads the one-time setup pool evenly across the effective
// amortization window. A zero or negative denominator yields zero rather than
// an infinite monthly charge.
func amortizedSetup(setupCosts []model.SetupCost, months int) float64 {
	if months <= 0 {
		return 0
	}
	total := 0.0
	for _, c := range setupCosts {
		total += c.TotalAmount
	}
	return total / float64(months)
}

// fixedTotal sums flat monthly amounts. Growth rules keyed by cost-line id
// are an optional hook: lines without a rule keep their base amount.
func fixedTotal(lines []model.FixedCost, month int, rules map[string]*growth.Rule) float64 {
	total := 0.0
	for _, line := range lines {
		total += growth.Apply(line.AmountPerMonth, month, rules[line.ID])
	}
	return total
}

// semiVariableTotal sums base + rate*units for each line against the
// referenced unit count. Semi-variable lines take no growth in the default
// path.
func semiVariableTotal(lines []model.SemiVariableCost, products []model.Product) float64 {
	total := 0.0
	for _, line := range lines {
		units := unitsForReference(line.UnitReference, products)
		total += line.BaseAmountPerMonth + line.VariableRatePerUnit*units
	}
	return total
}

// variableTotal sums rate*units for each line. Growth rules keyed by
// cost-line id scale the rate when present.
func variableTotal(lines []model.VariableCost, products []model.Product, month int, rules map[string]*growth.Rule) float64 {
	total := 0.0
	for _, line := range lines {
		rate := growth.Apply(line.RatePerUnit, month, rules[line.ID])
		total += rate * unitsForReference(line.ProductReference, products)
	}
	return total
}

// marketingTotal combines the three marketing behaviors: flat, per-unit, and
// percent-of-revenue.
func marketingTotal(mk model.MarketingCosts, products []model.Product) float64 {
	total := 0.0
	for _, line := range mk.Fixed {
		total += line.AmountPerMonth
	}
	for _, line := range mk.PerUnit {
		total += line.RatePerUnit * unitsForReference(line.ProductReference, products)
	}
	for _, line := range mk.PercentRevenue {
		total += line.PercentageOfRevenue / percentDivisor * revenueForReference(line.RevenueReference, products)
	}
	return total
}
