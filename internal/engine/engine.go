// Package engine computes multi-month profit-and-loss projections and
// breakeven analysis for a business model. Every entry point is a pure
// function of its inputs and never returns an error: invalid numerics are
// coerced to zero and degenerate breakeven inputs yield a defined sentinel
// result.
package engine

import (
	"go.uber.org/zap"

	"github.com/flexibudget/budget-forecast/internal/model"
	"github.com/flexibudget/budget-forecast/pkg/constants"
)

const percentDivisor = constants.PercentageMultiplier

// Engine runs projections. It holds only a logger; calls are safe to repeat
// and to run concurrently with different inputs.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a projection engine with the given logger. If logger is
// nil, it will use a no-op logger to prevent panics.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Results is the full output of one calculation: headline summary fields, the
// month-by-month statements, and the breakeven analysis.
type Results struct {
	TotalRevenue        float64     `json:"totalRevenue"`
	TotalCOGS           float64     `json:"totalCOGS"`
	GrossProfit         float64     `json:"grossProfit"`
	TotalOperatingCosts float64     `json:"totalOperatingCosts"`
	NetPnL              float64     `json:"netPnL"`
	NetMarginPercent    float64     `json:"netMarginPercent"`
	MonthlyPnL          []Statement `json:"monthlyPnL"`
	Breakeven           Breakeven   `json:"breakeven"`
}

// Project produces exactly settings.Months statements, month indices 1..N in
// order. It runs the full horizon even when every month is loss-making, and
// two calls with identical inputs yield identical output.
func (e *Engine) Project(m model.BusinessModel, settings model.ProjectionSettings) []Statement {
	if settings.Months < 1 {
		return nil
	}

	m = m.Sanitized()
	amortized := amortizedSetup(m.SetupCosts, settings.AmortizationMonths())

	statements := make([]Statement, 0, settings.Months)
	for month := 1; month <= settings.Months; month++ {
		statements = append(statements, buildMonth(month, &m, settings, amortized))
	}
	return statements
}

// Calculate is the sole entry point external collaborators use. It runs the
// projection once and feeds the same statement sequence into the breakeven
// analysis so the cumulative scan does not recompute the horizon.
//
// The headline summary fields are sourced from month 1 only, not aggregated
// across the horizon; the UI treats them as the baseline month snapshot.
func (e *Engine) Calculate(m model.BusinessModel, settings model.ProjectionSettings) Results {
	statements := e.Project(m, settings)

	var first Statement
	if len(statements) > 0 {
		first = statements[0]
	}

	breakeven := e.AnalyzeBreakeven(m, settings, statements)

	e.logger.Debug("calculation complete",
		zap.String("op", "engine.Calculate"),
		zap.Int("months", len(statements)),
		zap.Float64("netPnL", first.NetPnL),
	)

	return Results{
		TotalRevenue:        first.Revenue,
		TotalCOGS:           first.COGS,
		GrossProfit:         first.GrossProfit,
		TotalOperatingCosts: first.TotalCosts,
		NetPnL:              first.NetPnL,
		NetMarginPercent:    first.MarginPercent,
		MonthlyPnL:          statements,
		Breakeven:           breakeven,
	}
}
