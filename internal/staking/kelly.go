// Package staking sizes bets with a capped fractional Kelly criterion or a
// flat bankroll percentage, and gates recommendations behind high-precision
// probability and edge thresholds.
package staking

import "github.com/shopspring/decimal"

// Params configures stake sizing. Percentages are of bankroll.
type Params struct {
	KellyMultiplier  float64
	MaxStakePercent  float64
	FlatStakePercent float64
	UseFlatStaking   bool
}

// DefaultParams returns half-Kelly with a 5% cap and 1.5% flat stakes.
func DefaultParams() Params {
	return Params{
		KellyMultiplier:  0.5,
		MaxStakePercent:  5.0,
		FlatStakePercent: 1.5,
		UseFlatStaking:   true,
	}
}

// KellyFraction returns the fraction of bankroll to stake under the Kelly
// criterion f = (b·p − q)/b, scaled by the multiplier and capped at
// maxStakePercent/100. Degenerate inputs (p outside (0,1), odds ≤ 1) and
// negative-expectation bets return 0.
func KellyFraction(probability, oddsDecimal, multiplier, maxStakePercent float64) float64 {
	if probability <= 0 || probability >= 1 || oddsDecimal <= 1 {
		return 0.0
	}

	b := oddsDecimal - 1.0
	q := 1.0 - probability
	kellyFrac := (b*probability - q) / b

	kellyFrac *= multiplier
	if kellyFrac <= 0 {
		return 0.0
	}

	cap := maxStakePercent / 100.0
	if kellyFrac > cap {
		return cap
	}
	return kellyFrac
}

// BetSize returns the stake amount for the given bankroll, rounded to cents.
// Flat mode stakes a fixed bankroll percentage regardless of edge; Kelly mode
// sizes by the capped Kelly fraction.
func BetSize(bankroll, probability, oddsDecimal float64, p Params) float64 {
	var fraction float64
	if p.UseFlatStaking {
		fraction = p.FlatStakePercent / 100.0
	} else {
		fraction = KellyFraction(probability, oddsDecimal, p.KellyMultiplier, p.MaxStakePercent)
	}

	stake := decimal.NewFromFloat(bankroll).Mul(decimal.NewFromFloat(fraction))
	f, _ := stake.Round(2).Float64()
	return f
}

// Edge is the model probability minus the market probability, in percentage
// points.
func Edge(trueProbability, marketProbability float64) float64 {
	return trueProbability - marketProbability
}
