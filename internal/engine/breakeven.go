package engine

import (
	"math"

	"go.uber.org/zap"

	"github.com/flexibudget/budget-forecast/internal/model"
	"github.com/flexibudget/budget-forecast/pkg/mathutil"
)

// Breakeven reports the volume, revenue, and timing at which the business
// covers its fixed commitments. MonthsToBreakeven is nil when cumulative
// profit never recovers the setup investment within the horizon.
type Breakeven struct {
	BreakevenUnitsTotal      float64            `json:"breakevenUnitsTotal"`
	BreakevenUnitsPerProduct map[string]float64 `json:"breakevenUnitsPerProduct"`
	BreakevenRevenue         float64            `json:"breakevenRevenue"`
	MonthsToBreakeven        *int               `json:"monthsToBreakeven"`
}

// AnalyzeBreakeven computes the weighted-contribution-margin breakeven for
// the model. The statements argument is the already-computed projection used
// for the cumulative months-to-breakeven scan; passing the sequence in avoids
// recomputing the horizon.
//
// Degenerate inputs (no products, zero total units, or no product with a
// positive contribution margin) return the zero/nil sentinel result. That is
// a valid terminal state, not an error.
func (e *Engine) AnalyzeBreakeven(m model.BusinessModel, settings model.ProjectionSettings, statements []Statement) Breakeven {
	m = m.Sanitized()

	// Fixed pool: flat costs, semi-variable bases only, and the monthly
	// amortized setup charge.
	fixedPool := 0.0
	for _, c := range m.FixedCosts {
		fixedPool += c.AmountPerMonth
	}
	for _, c := range m.SemiVariableCosts {
		fixedPool += c.BaseAmountPerMonth
	}
	fixedPool += amortizedSetup(m.SetupCosts, settings.AmortizationMonths())

	// Weighted average contribution margin across products with a positive
	// margin. Loss-making products cannot be assigned a finite breakeven
	// share, so they are excluded from both numerator and denominator.
	weightedMargin := 0.0
	contributingUnits := 0.0
	for _, p := range m.Products {
		margin := e.unitContributionMargin(p, m)
		if margin > 0 {
			weightedMargin += margin * p.UnitsSoldPerMonth
			contributingUnits += p.UnitsSoldPerMonth
		}
	}

	result := Breakeven{BreakevenUnitsPerProduct: map[string]float64{}}

	avgMargin := mathutil.SafeDivide(weightedMargin, contributingUnits)
	if avgMargin <= 0 {
		e.logger.Debug("breakeven undefined: no viable contribution margin",
			zap.String("op", "engine.AnalyzeBreakeven"),
		)
		return result
	}

	result.BreakevenUnitsTotal = math.Ceil(fixedPool / avgMargin)

	// Blended average price uses every product with nonzero volume, not just
	// the contribution-positive ones.
	allUnits := totalUnits(m.Products)
	result.BreakevenRevenue = result.BreakevenUnitsTotal * mathutil.SafeDivide(totalRevenue(m.Products), allUnits)

	// Allocate breakeven volume proportionally to each product's unit share;
	// with no volume at all, split evenly across products.
	for _, p := range m.Products {
		share := 0.0
		if allUnits > 0 {
			share = p.UnitsSoldPerMonth / allUnits
		} else if len(m.Products) > 0 {
			share = 1 / float64(len(m.Products))
		}
		result.BreakevenUnitsPerProduct[p.ID] = math.Ceil(result.BreakevenUnitsTotal * share)
	}

	// Months to breakeven: first month where cumulative net P&L recovers the
	// un-amortized setup investment.
	totalSetup := m.TotalSetupCost()
	cumulative := 0.0
	for _, s := range statements {
		cumulative += s.NetPnL
		if cumulative >= totalSetup {
			month := s.Month
			result.MonthsToBreakeven = &month
			break
		}
	}

	return result
}

// unitContributionMargin is the selling price minus everything that scales
// with one unit of the product: direct COGS, variable-cost rates, per-unit
// marketing rates, and percent-of-revenue marketing converted via the
// product's own price.
func (e *Engine) unitContributionMargin(p model.Product, m model.BusinessModel) float64 {
	variablePerUnit := 0.0
	for _, vc := range m.VariableCosts {
		if vc.ProductReference == model.AllProducts || vc.ProductReference == p.ID {
			variablePerUnit += vc.RatePerUnit
		}
	}

	marketingPerUnit := 0.0
	for _, mc := range m.Marketing.PerUnit {
		if mc.ProductReference == model.AllProducts || mc.ProductReference == p.ID {
			marketingPerUnit += mc.RatePerUnit
		}
	}

	marketingPercent := 0.0
	for _, mc := range m.Marketing.PercentRevenue {
		if mc.RevenueReference == model.TotalRevenue || mc.RevenueReference == p.ID {
			marketingPercent += mc.PercentageOfRevenue
		}
	}

	return p.SellingPricePerUnit -
		p.COGSPerUnit.PerUnit() -
		variablePerUnit -
		marketingPerUnit -
		marketingPercent/percentDivisor*p.SellingPricePerUnit
}
