package engine

import (
	"testing"

	"github.com/flexibudget/budget-forecast/internal/model"
	"github.com/flexibudget/budget-forecast/pkg/growth"
)

func twoProducts() []model.Product {
	return []model.Product{
		{ID: "shoes", SellingPricePerUnit: 100, UnitsSoldPerMonth: 50},
		{ID: "bags", SellingPricePerUnit: 200, UnitsSoldPerMonth: 25},
	}
}

func TestUnitsForReference(t *testing.T) {
	products := twoProducts()

	tests := []struct {
		name     string
		ref      string
		expected float64
	}{
		{name: "All products sentinel", ref: model.AllProducts, expected: 75},
		{name: "Combined sentinel", ref: model.AllProductsCombined, expected: 75},
		{name: "Specific product", ref: "bags", expected: 25},
		{name: "Dangling reference degrades to zero", ref: "deleted-product", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unitsForReference(tt.ref, products); got != tt.expected {
				t.Errorf("unitsForReference(%q) = %v, expected %v", tt.ref, got, tt.expected)
			}
		})
	}
}

func TestRevenueForReference(t *testing.T) {
	products := twoProducts()

	if got := revenueForReference(model.TotalRevenue, products); got != 10000 {
		t.Errorf("total revenue = %v, expected 10000", got)
	}
	if got := revenueForReference("shoes", products); got != 5000 {
		t.Errorf("shoes revenue = %v, expected 5000", got)
	}
	if got := revenueForReference("deleted-product", products); got != 0 {
		t.Errorf("dangling revenue reference = %v, expected 0", got)
	}
}

func TestAmortizedSetup(t *testing.T) {
	setup := []model.SetupCost{
		{Name: "Equipment", TotalAmount: 9000},
		{Name: "Licenses", TotalAmount: 3000},
	}

	tests := []struct {
		name     string
		months   int
		expected float64
	}{
		{name: "Spread over 12 months", months: 12, expected: 1000},
		{name: "Spread over 6 months", months: 6, expected: 2000},
		{name: "Zero denominator guard", months: 0, expected: 0},
		{name: "Negative denominator guard", months: -3, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := amortizedSetup(setup, tt.months); got != tt.expected {
				t.Errorf("amortizedSetup(months=%d) = %v, expected %v", tt.months, got, tt.expected)
			}
		})
	}
}

func TestFixedTotalWithGrowthHook(t *testing.T) {
	lines := []model.FixedCost{
		{ID: "rent", AmountPerMonth: 1000},
		{ID: "salaries", AmountPerMonth: 5000},
	}

	// No rules: straight sum.
	if got := fixedTotal(lines, 4, nil); got != 6000 {
		t.Errorf("fixedTotal without rules = %v, expected 6000", got)
	}

	// Rule on one line only; the other keeps its base amount.
	rules := map[string]*growth.Rule{
		"rent": {Mode: growth.ModeProportional, GrowthPercentage: 10},
	}
	got := fixedTotal(lines, 2, rules)
	if got != 1100+5000 {
		t.Errorf("fixedTotal with rent growth = %v, expected 6100", got)
	}
}

func TestSemiVariableTotal(t *testing.T) {
	products := twoProducts()
	lines := []model.SemiVariableCost{
		{ID: "electricity", BaseAmountPerMonth: 500, VariableRatePerUnit: 2, UnitReference: model.AllProductsCombined},
		{ID: "finishing", BaseAmountPerMonth: 100, VariableRatePerUnit: 4, UnitReference: "bags"},
	}

	// 500 + 2*75 + 100 + 4*25 = 850
	if got := semiVariableTotal(lines, products); got != 850 {
		t.Errorf("semiVariableTotal = %v, expected 850", got)
	}
}

func TestVariableTotalDanglingReference(t *testing.T) {
	products := twoProducts()
	lines := []model.VariableCost{
		{ID: "delivery", RatePerUnit: 10, ProductReference: model.AllProducts},
		{ID: "ghost", RatePerUnit: 99, ProductReference: "deleted-product"},
	}

	// 10*75 + 99*0 = 750; the dangling line contributes nothing.
	if got := variableTotal(lines, products, 1, nil); got != 750 {
		t.Errorf("variableTotal = %v, expected 750", got)
	}
}

func TestMarketingTotal(t *testing.T) {
	products := twoProducts()
	mk := model.MarketingCosts{
		Fixed:   []model.MarketingFixedCost{{ID: "branding", AmountPerMonth: 300}},
		PerUnit: []model.MarketingPerUnitCost{{ID: "flyers", RatePerUnit: 1, ProductReference: "shoes"}},
		PercentRevenue: []model.MarketingPercentRevenueCost{
			{ID: "platform-fee", PercentageOfRevenue: 5, RevenueReference: model.TotalRevenue},
			{ID: "bags-ads", PercentageOfRevenue: 10, RevenueReference: "bags"},
		},
	}

	// 300 + 1*50 + 0.05*10000 + 0.10*5000 = 1350
	if got := marketingTotal(mk, products); got != 1350 {
		t.Errorf("marketingTotal = %v, expected 1350", got)
	}
}
