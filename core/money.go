package core

import (
	"github.com/shopspring/decimal"
)

const monetaryPrecision int32 = 2 // 2 decimal places for SAR amounts

// roundToNearest rounds amount to the nearest multiple of unit using
// decimal arithmetic to avoid floating-point drift (e.g. unit 5 for
// welcome bids, unit 1000 for credit limits).
func roundToNearest(amount float64, unit int64) float64 {
	unitDecimal := decimal.NewFromInt(unit)
	result, _ := decimal.NewFromFloat(amount).
		Div(unitDecimal).
		Round(0).
		Mul(unitDecimal).
		Float64()
	return result
}

// applyStrategyMultiplier scales a base bid by the strategy coefficient
// using decimal arithmetic for precise calculation.
func applyStrategyMultiplier(baseBid float64, strategy BiddingStrategy) float64 {
	multiplier := 1.0
	switch strategy {
	case StrategyAggressive:
		multiplier = 1.3
	case StrategyConservative:
		multiplier = 0.8
	}

	result, _ := decimal.NewFromFloat(baseBid).
		Mul(decimal.NewFromFloat(multiplier)).
		Float64()
	return result
}

// amountsEqual compares two monetary amounts at monetaryPrecision.
// Used wherever equal-amount grouping matters (tie detection), so two
// amounts that render identically are treated as tied.
func amountsEqual(a, b float64) bool {
	return decimal.NewFromFloat(a).Round(monetaryPrecision).
		Equal(decimal.NewFromFloat(b).Round(monetaryPrecision))
}

// clampAmount bounds v into [lo, hi].
func clampAmount(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
