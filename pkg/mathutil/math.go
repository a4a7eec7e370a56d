// Package mathutil provides common mathematical utility functions.
package mathutil

import "math"

// Sanitize coerces invalid monetary inputs to zero. NaN, infinities, and
// negative values all collapse to 0 so that downstream arithmetic never
// propagates them.
func Sanitize(val float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) || val < 0 {
		return 0
	}
	return val
}

// SafeDivide returns numerator/denominator, or 0 when the denominator is zero.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}
