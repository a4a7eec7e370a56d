package engine

import (
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/flexibudget/budget-forecast/internal/model"
	"github.com/flexibudget/budget-forecast/pkg/growth"
	"github.com/flexibudget/budget-forecast/pkg/mathutil"
)

// endToEndModel is the scenario from the acceptance checklist: one product at
// price 500 selling 10 units/month with 200/unit COGS, one 1000/month fixed
// cost, flat growth.
func endToEndModel() model.BusinessModel {
	return model.BusinessModel{
		Products: []model.Product{
			{
				ID:                  "p1",
				Name:                "Leather Shoes",
				UnitLabel:           "pair",
				SellingPricePerUnit: 500,
				UnitsSoldPerMonth:   10,
				COGSPerUnit:         &model.COGSBreakdown{RawMaterialCost: 150, LaborCostPerUnit: 50},
			},
		},
		FixedCosts: []model.FixedCost{{ID: "rent", Name: "Rent", AmountPerMonth: 1000}},
	}
}

func TestProjectHorizonLength(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	m := endToEndModel()

	for _, months := range []int{1, 3, 12, 36, 60} {
		settings := model.ProjectionSettings{Months: months, AmortizationType: model.AmortizeOverProjection}
		statements := engine.Project(m, settings)
		if len(statements) != months {
			t.Errorf("Project() with horizon %d produced %d statements", months, len(statements))
		}
		for i, s := range statements {
			if s.Month != i+1 {
				t.Errorf("statement %d has month index %d", i, s.Month)
			}
		}
	}
}

func TestProjectNonPositiveHorizon(t *testing.T) {
	engine := NewEngine(nil)
	settings := model.ProjectionSettings{Months: 0}
	if statements := engine.Project(endToEndModel(), settings); len(statements) != 0 {
		t.Errorf("expected empty projection for zero horizon, got %d statements", len(statements))
	}
}

func TestCalculateEndToEndScenario(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	settings := model.ProjectionSettings{Months: 3, AmortizationType: model.AmortizeOverProjection}

	results := engine.Calculate(endToEndModel(), settings)

	if len(results.MonthlyPnL) != 3 {
		t.Fatalf("expected 3 monthly statements, got %d", len(results.MonthlyPnL))
	}

	for _, s := range results.MonthlyPnL {
		if s.Revenue != 5000 {
			t.Errorf("month %d revenue = %v, expected 5000", s.Month, s.Revenue)
		}
		if s.COGS != 2000 {
			t.Errorf("month %d COGS = %v, expected 2000", s.Month, s.COGS)
		}
		if s.GrossProfit != 3000 {
			t.Errorf("month %d gross profit = %v, expected 3000", s.Month, s.GrossProfit)
		}
		if s.TotalCosts != 1000 {
			t.Errorf("month %d total costs = %v, expected 1000", s.Month, s.TotalCosts)
		}
		if s.NetPnL != 2000 {
			t.Errorf("month %d net P&L = %v, expected 2000", s.Month, s.NetPnL)
		}
		if !mathutil.WithinTolerance(s.MarginPercent, 40, 0.0001) {
			t.Errorf("month %d margin = %v, expected 40", s.Month, s.MarginPercent)
		}
	}

	// Headline summary comes from month 1.
	if results.TotalRevenue != 5000 || results.NetPnL != 2000 {
		t.Errorf("summary fields = %v/%v, expected 5000/2000", results.TotalRevenue, results.NetPnL)
	}
}

func TestCalculateDeterminism(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	m := endToEndModel()
	m.SetupCosts = []model.SetupCost{{ID: "s1", Name: "Fitout", TotalAmount: 6000}}
	m.Marketing.PercentRevenue = []model.MarketingPercentRevenueCost{
		{ID: "fee", PercentageOfRevenue: 3, RevenueReference: model.TotalRevenue},
	}
	settings := model.ProjectionSettings{
		Months:           12,
		AmortizationType: model.AmortizeOver12Months,
		GrowthRates: model.GrowthRates{
			UnitsSold: map[string]*growth.Rule{
				"p1": {Mode: growth.ModeProportional, GrowthPercentage: 5},
			},
		},
	}

	first := engine.Calculate(m, settings)
	second := engine.Calculate(m, settings)

	if !reflect.DeepEqual(first, second) {
		t.Error("Calculate() is not deterministic for identical inputs")
	}
}

func TestCalculateZeroProductBoundary(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	m := model.BusinessModel{
		FixedCosts: []model.FixedCost{{ID: "rent", AmountPerMonth: 800}},
	}
	settings := model.ProjectionSettings{Months: 4, AmortizationType: model.AmortizeOverProjection}

	results := engine.Calculate(m, settings)

	for _, s := range results.MonthlyPnL {
		if s.Revenue != 0 || s.COGS != 0 {
			t.Errorf("month %d revenue/COGS = %v/%v, expected zeros", s.Month, s.Revenue, s.COGS)
		}
		if s.MarginPercent != 0 {
			t.Errorf("month %d margin = %v, expected 0 (not NaN)", s.Month, s.MarginPercent)
		}
	}

	be := results.Breakeven
	if be.BreakevenUnitsTotal != 0 || be.BreakevenRevenue != 0 {
		t.Errorf("expected degenerate breakeven, got units=%v revenue=%v", be.BreakevenUnitsTotal, be.BreakevenRevenue)
	}
	if be.MonthsToBreakeven != nil {
		t.Errorf("expected nil months-to-breakeven, got %d", *be.MonthsToBreakeven)
	}
	if len(be.BreakevenUnitsPerProduct) != 0 {
		t.Errorf("expected empty allocation, got %v", be.BreakevenUnitsPerProduct)
	}
}

func TestAmortizationSwitch(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	m := endToEndModel()
	m.SetupCosts = []model.SetupCost{{ID: "s1", Name: "Machinery", TotalAmount: 12000}}

	tests := []struct {
		name     string
		mode     string
		expected float64
	}{
		{name: "Fixed 12-month window", mode: model.AmortizeOver12Months, expected: 1000},
		{name: "Spread over 6-month projection", mode: model.AmortizeOverProjection, expected: 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := model.ProjectionSettings{Months: 6, AmortizationType: tt.mode}
			statements := engine.Project(m, settings)
			for _, s := range statements {
				if s.SetupCostAmortized != tt.expected {
					t.Errorf("month %d amortized = %v, expected %v", s.Month, s.SetupCostAmortized, tt.expected)
				}
			}
		})
	}
}

func TestProjectAppliesGrowthToProducts(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	m := endToEndModel()
	settings := model.ProjectionSettings{
		Months:           3,
		AmortizationType: model.AmortizeOverProjection,
		GrowthRates: model.GrowthRates{
			UnitsSold: map[string]*growth.Rule{
				"p1": {Mode: growth.ModeProportional, GrowthPercentage: 10},
			},
		},
	}

	statements := engine.Project(m, settings)

	// 10 units, then 11, then 12.1; revenue follows at price 500.
	expected := []float64{5000, 5500, 6050}
	for i, want := range expected {
		if !mathutil.WithinTolerance(statements[i].Revenue, want, 0.0001) {
			t.Errorf("month %d revenue = %v, expected %v", i+1, statements[i].Revenue, want)
		}
	}
}

func TestProjectDoesNotMutateInputs(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	m := endToEndModel()
	settings := model.ProjectionSettings{
		Months:           6,
		AmortizationType: model.AmortizeOverProjection,
		GrowthRates: model.GrowthRates{
			UnitsSold: map[string]*growth.Rule{
				"p1": {Mode: growth.ModeProportional, GrowthPercentage: 25},
			},
		},
	}

	engine.Project(m, settings)

	if m.Products[0].UnitsSoldPerMonth != 10 || m.Products[0].SellingPricePerUnit != 500 {
		t.Errorf("input model mutated: units=%v price=%v",
			m.Products[0].UnitsSoldPerMonth, m.Products[0].SellingPricePerUnit)
	}
}
