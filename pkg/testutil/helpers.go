// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/flexibudget/budget-forecast/internal/engine"
	"github.com/flexibudget/budget-forecast/pkg/constants"
)

// FindMonth finds a monthly statement by month number in the results slice.
// Returns a pointer to the statement if found, nil otherwise.
func FindMonth(statements []engine.Statement, month int) *engine.Statement {
	for i := range statements {
		if statements[i].Month == month {
			return &statements[i]
		}
	}
	return nil
}

// CurrencyEquals reports whether two monetary amounts agree within one cent.
func CurrencyEquals(a, b float64) bool {
	return math.Abs(a-b) < constants.CurrencyTolerance
}
