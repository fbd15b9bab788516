// Package tax converts unit prices between their tax-exclusive and
// tax-inclusive forms using the 5% sales-tax rules the till operates under.
//
// The two directions are intentionally not inverses of each other: the
// exclusive-to-inclusive direction applies the markup and rounds once, while
// the inclusive-to-exclusive direction derives a whole-unit tax amount through
// double rounding. Callers edit one side at a time and let the converter fill
// in the other; the stored pair may legitimately differ from a pure
// multiplication by the rounding gap.
package tax

import (
	"math"
	"strconv"
	"strings"

	"github.com/jackielin7778-cloud/pos/internal/common"
)

// Rate is the sales-tax markup applied on top of a tax-exclusive price.
const Rate = 1.05

// ToInclusive computes the tax-inclusive unit price from a tax-exclusive one,
// rounded to one decimal. Non-finite or non-positive input yields 0.
func ToInclusive(ex float64) float64 {
	if !usable(ex) {
		return 0
	}
	return common.Round(ex*Rate, 1)
}

// ToExclusive computes the tax-exclusive unit price from a tax-inclusive one.
// The tax amount is the inclusive price divided by 21, rounded to one decimal
// and then to a whole unit; the exclusive price is the inclusive price minus
// that amount, rounded to one decimal. Non-finite or non-positive input
// yields 0.
func ToExclusive(inc float64) float64 {
	if !usable(inc) {
		return 0
	}
	taxAmount := common.Round(common.Round(inc/21, 1), 0)
	return common.Round(inc-taxAmount, 1)
}

// ParseInclusive converts a form-style price string to its tax-inclusive
// counterpart, treating empty or non-numeric input as zero.
func ParseInclusive(ex string) float64 {
	return ToInclusive(parse(ex))
}

// ParseExclusive converts a form-style price string to its tax-exclusive
// counterpart, treating empty or non-numeric input as zero.
func ParseExclusive(inc string) float64 {
	return ToExclusive(parse(inc))
}

func parse(value string) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return v
}

func usable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
