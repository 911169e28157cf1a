package calc

import "math"

// Sanitize maps non-finite values (NaN, ±Inf) to 0.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Clamp maps non-finite and negative values to 0.
func Clamp(v float64) float64 {
	v = Sanitize(v)
	if v < 0 {
		return 0
	}
	return v
}
