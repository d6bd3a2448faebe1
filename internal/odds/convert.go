// Package odds provides pure conversions between decimal odds, American
// moneylines, and implied probabilities, plus bookmaker margin removal.
//
// Probabilities are expressed as percentages (0-100) unless a function name
// says otherwise.
package odds

import "math"

// DecimalToImpliedProb converts decimal odds (e.g. 1.67) to implied
// probability in percent. Odds at or below 1.0 carry no payout and map to 0.
func DecimalToImpliedProb(odds float64) float64 {
	if odds <= 1.0 {
		return 0.0
	}
	return (1.0 / odds) * 100.0
}

// MoneylineToImpliedProb converts an American moneyline (e.g. -150, +130) to
// implied probability in percent.
func MoneylineToImpliedProb(ml float64) float64 {
	if ml == 0 {
		return 0.0
	}
	if ml > 0 {
		return (100.0 / (ml + 100.0)) * 100.0
	}
	absML := math.Abs(ml)
	return (absML / (absML + 100.0)) * 100.0
}

// ImpliedProbToDecimal converts a probability in percent back to decimal
// odds. Degenerate probabilities (outside the open interval) map to 0.
func ImpliedProbToDecimal(probability float64) float64 {
	if probability <= 0.0 || probability >= 100.0 {
		return 0.0
	}
	return 100.0 / probability
}

// ImpliedProbToMoneyline converts a probability in percent to an American
// moneyline. Favorites (p >= 50) get a negative line, underdogs a positive
// one. Degenerate probabilities map to 0.
func ImpliedProbToMoneyline(probability float64) float64 {
	if probability <= 0.0 || probability >= 100.0 {
		return 0.0
	}
	p := probability / 100.0
	if p >= 0.5 {
		return -(p / (1.0 - p)) * 100.0
	}
	return ((1.0 - p) / p) * 100.0
}

// MoneylineToDecimal converts an American moneyline to decimal odds.
func MoneylineToDecimal(ml float64) float64 {
	if ml > 0 {
		return 1.0 + ml/100.0
	}
	return 1.0 + 100.0/math.Abs(ml)
}

// DecimalOddsToProbability converts decimal odds to a probability fraction
// in [0, 1]. Used where probabilities are scaled to percent later.
func DecimalOddsToProbability(odds float64) float64 {
	if odds < 1.0 {
		return 0.0
	}
	return 1.0 / odds
}

// CentsToProbability converts a "cents" market split (e.g. home=41, away=60)
// to a probability fraction. The overround is removed separately.
func CentsToProbability(cents float64) float64 {
	return math.Max(0.0, cents/100.0)
}
