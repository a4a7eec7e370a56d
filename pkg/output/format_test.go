package output

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/flexibudget/budget-forecast/internal/engine"
	"github.com/flexibudget/budget-forecast/internal/model"
)

func sampleResults(t *testing.T) engine.Results {
	t.Helper()
	eng := engine.NewEngine(zap.NewNop())
	m := model.BusinessModel{
		Products: []model.Product{
			{
				ID:                  "p1",
				Name:                "Leather Shoes",
				SellingPricePerUnit: 500,
				UnitsSoldPerMonth:   10,
				COGSPerUnit:         &model.COGSBreakdown{RawMaterialCost: 200},
			},
		},
		FixedCosts: []model.FixedCost{{ID: "rent", Name: "Rent", AmountPerMonth: 1000}},
	}
	settings := model.ProjectionSettings{Months: 3, AmortizationType: model.AmortizeOverProjection}
	return eng.Calculate(m, settings)
}

func TestCsvString(t *testing.T) {
	results := sampleResults(t)
	csv := CsvString(results.MonthlyPnL)

	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}

	if !strings.HasPrefix(lines[0], `"month","revenue","cogs"`) {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"5000.00"`) {
		t.Errorf("first row missing revenue: %s", lines[1])
	}
	if !strings.Contains(lines[1], `"2000.00"`) {
		t.Errorf("first row missing net P&L or COGS: %s", lines[1])
	}
	if !strings.HasPrefix(lines[3], `"3",`) {
		t.Errorf("last row should be month 3: %s", lines[3])
	}
}

func TestHTMLReport(t *testing.T) {
	results := sampleResults(t)
	products := []model.Product{
		{ID: "p1", Name: "Leather <Shoes>", SellingPricePerUnit: 500, UnitsSoldPerMonth: 10},
	}

	report := HTMLReport(results, products, "Dhaka Shoe Works")

	for _, want := range []string{
		"Dhaka Shoe Works",
		"Leather &lt;Shoes&gt;", // product names must be escaped
		"৳5,000.00",             // month-1 revenue card
		"Breakeven Analysis",
		"Month 3",
		"40.0%",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}

	if strings.Contains(report, "Month 13") {
		t.Error("report should cap the P&L table at 12 months")
	}
}

func TestHTMLReportCapsTable(t *testing.T) {
	eng := engine.NewEngine(zap.NewNop())
	m := model.BusinessModel{
		Products: []model.Product{{ID: "p1", Name: "Thing", SellingPricePerUnit: 10, UnitsSoldPerMonth: 5}},
	}
	settings := model.ProjectionSettings{Months: 24, AmortizationType: model.AmortizeOverProjection}
	results := eng.Calculate(m, settings)

	report := HTMLReport(results, m.Products, "")
	if !strings.Contains(report, "Month 12") {
		t.Error("report should include month 12")
	}
	if strings.Contains(report, "Month 13") {
		t.Error("report should stop after month 12")
	}
}
