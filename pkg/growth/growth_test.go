package growth

import (
	"testing"

	"github.com/flexibudget/budget-forecast/pkg/mathutil"
)

func TestApplyWithoutRule(t *testing.T) {
	for month := 1; month <= 36; month++ {
		if got := Apply(250.0, month, nil); got != 250.0 {
			t.Fatalf("Apply(250, %d, nil) = %v, expected 250", month, got)
		}
	}
}

func TestApplyProportionalMonthly(t *testing.T) {
	rule := &Rule{Mode: ModeProportional, GrowthPercentage: 10, Frequency: FrequencyMonthly}

	tests := []struct {
		name     string
		month    int
		expected float64
	}{
		{name: "Month 1 is the base value", month: 1, expected: 100.0},
		{name: "Month 2 compounds once", month: 2, expected: 110.0},
		{name: "Month 3 compounds twice", month: 3, expected: 121.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(100.0, tt.month, rule)
			if !mathutil.WithinTolerance(got, tt.expected, 0.0001) {
				t.Errorf("Apply(100, %d) = %v, expected %v", tt.month, got, tt.expected)
			}
		})
	}
}

func TestApplyProportionalZeroGrowthIsIdentity(t *testing.T) {
	rule := &Rule{Mode: ModeProportional, GrowthPercentage: 0}
	for month := 1; month <= 24; month++ {
		if got := Apply(77.5, month, rule); got != 77.5 {
			t.Fatalf("zero growth changed value at month %d: %v", month, got)
		}
	}
}

func TestApplyProportionalQuarterly(t *testing.T) {
	rule := &Rule{Mode: ModeProportional, GrowthPercentage: 10, Frequency: FrequencyQuarterly}

	tests := []struct {
		month    int
		expected float64
	}{
		{month: 1, expected: 100.0},
		{month: 3, expected: 100.0},
		{month: 4, expected: 110.0},
		{month: 6, expected: 110.0},
		{month: 7, expected: 121.0},
	}

	for _, tt := range tests {
		got := Apply(100.0, tt.month, rule)
		if !mathutil.WithinTolerance(got, tt.expected, 0.0001) {
			t.Errorf("Apply(100, %d) = %v, expected %v", tt.month, got, tt.expected)
		}
	}
}

func TestApplyExplicitMonthly(t *testing.T) {
	rule := &Rule{Mode: ModeMonthly, MonthlyValues: []float64{10, 20, 30}}

	tests := []struct {
		name     string
		month    int
		expected float64
	}{
		{name: "First month uses first entry", month: 1, expected: 10},
		{name: "Third month uses third entry", month: 3, expected: 30},
		{name: "Beyond array falls back to base", month: 4, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply(5, tt.month, rule); got != tt.expected {
				t.Errorf("Apply(5, %d) = %v, expected %v", tt.month, got, tt.expected)
			}
		})
	}
}

func TestApplyExplicitQuarterly(t *testing.T) {
	rule := &Rule{Mode: ModeQuarterly, QuarterlyValues: []float64{100, 200}}

	tests := []struct {
		month    int
		expected float64
	}{
		{month: 1, expected: 100},
		{month: 3, expected: 100},
		{month: 4, expected: 200},
		{month: 6, expected: 200},
		{month: 7, expected: 50}, // past the array, fall back to base
	}

	for _, tt := range tests {
		if got := Apply(50, tt.month, rule); got != tt.expected {
			t.Errorf("Apply(50, %d) = %v, expected %v", tt.month, got, tt.expected)
		}
	}
}

func TestApplyUnknownModeFallsBack(t *testing.T) {
	rule := &Rule{Mode: "annually", GrowthPercentage: 50}
	if got := Apply(40, 12, rule); got != 40 {
		t.Errorf("unknown mode should yield base value, got %v", got)
	}
}
