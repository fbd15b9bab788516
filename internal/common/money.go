package common

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds a monetary value to the given number of decimal places using
// half-away-from-zero semantics. Going through decimal avoids binary float
// artifacts on values like 2.675.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// RoundWhole rounds to the nearest whole currency unit, half up.
func RoundWhole(v float64) float64 {
	return Round(v, 0)
}
