// Package growth evaluates growth rules that shape how a base value evolves
// across the projection horizon.
package growth

import (
	"math"

	"github.com/flexibudget/budget-forecast/pkg/constants"
)

// Rule modes.
const (
	// ModeMonthly provides an explicit value per calendar month.
	ModeMonthly = "monthly"

	// ModeQuarterly provides an explicit value per 3-month block.
	ModeQuarterly = "quarterly"

	// ModeProportional compounds a percentage rate over time.
	ModeProportional = "proportional"
)

// Compounding frequencies for ModeProportional.
const (
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
)

// Rule describes one growth assumption. A nil Rule means the base value is
// held constant across all months.
type Rule struct {
	Mode             string    `json:"mode" yaml:"mode"`
	GrowthPercentage float64   `json:"growth_percentage,omitempty" yaml:"growthPercentage,omitempty"`
	Frequency        string    `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	MonthlyValues    []float64 `json:"monthly_values,omitempty" yaml:"monthlyValues,omitempty"`
	QuarterlyValues  []float64 `json:"quarterly_values,omitempty" yaml:"quarterlyValues,omitempty"`
}

// Apply returns the value for the given 1-indexed month. It is pure and never
// fails: a nil rule, an unknown mode, or a missing array entry all yield the
// base value unchanged.
func Apply(base float64, month int, rule *Rule) float64 {
	if rule == nil || month < 1 {
		return base
	}

	switch rule.Mode {
	case ModeMonthly:
		if idx := month - 1; idx < len(rule.MonthlyValues) {
			return rule.MonthlyValues[idx]
		}
		return base
	case ModeQuarterly:
		if idx := (month - 1) / constants.MonthsPerQuarter; idx < len(rule.QuarterlyValues) {
			return rule.QuarterlyValues[idx]
		}
		return base
	case ModeProportional:
		// Compound growth: V_t = V_0 * (1 + r)^t, never simple interest.
		factor := 1 + rule.GrowthPercentage/constants.PercentageMultiplier
		exponent := month - 1
		if rule.Frequency == FrequencyQuarterly {
			exponent = (month - 1) / constants.MonthsPerQuarter
		}
		return base * math.Pow(factor, float64(exponent))
	default:
		return base
	}
}
