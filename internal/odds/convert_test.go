package odds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecimalToImpliedProb(t *testing.T) {
	tests := []struct {
		name     string
		odds     float64
		expected float64
	}{
		{"Even money", 2.0, 50.0},
		{"Long shot", 4.0, 25.0},
		{"Heavy favorite", 1.25, 80.0},
		{"Degenerate at 1.0", 1.0, 0.0},
		{"Below 1.0", 0.5, 0.0},
		{"Zero", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DecimalToImpliedProb(tt.odds), 1e-9)
		})
	}
}

func TestMoneylineToImpliedProb(t *testing.T) {
	tests := []struct {
		name     string
		ml       float64
		expected float64
	}{
		{"Favorite -150", -150, 60.0},
		{"Underdog +130", 130, 43.478260869565215},
		{"Even +100", 100, 50.0},
		{"Even -100", -100, 50.0},
		{"Zero moneyline", 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, MoneylineToImpliedProb(tt.ml), 1e-9)
		})
	}
}

func TestImpliedProbToDecimal(t *testing.T) {
	assert.InDelta(t, 2.0, ImpliedProbToDecimal(50.0), 1e-9)
	assert.InDelta(t, 4.0, ImpliedProbToDecimal(25.0), 1e-9)
	assert.Equal(t, 0.0, ImpliedProbToDecimal(0.0))
	assert.Equal(t, 0.0, ImpliedProbToDecimal(100.0))
	assert.Equal(t, 0.0, ImpliedProbToDecimal(-5.0))
}

func TestImpliedProbToMoneyline(t *testing.T) {
	assert.InDelta(t, -150.0, ImpliedProbToMoneyline(60.0), 1e-9)
	assert.InDelta(t, 130.0, ImpliedProbToMoneyline(100.0*100.0/230.0), 1e-9)
	assert.InDelta(t, -100.0, ImpliedProbToMoneyline(50.0), 1e-9)
	assert.Equal(t, 0.0, ImpliedProbToMoneyline(0.0))
	assert.Equal(t, 0.0, ImpliedProbToMoneyline(100.0))
}

func TestMoneylineToDecimal(t *testing.T) {
	assert.InDelta(t, 2.3, MoneylineToDecimal(130), 1e-9)
	assert.InDelta(t, 1.0+100.0/150.0, MoneylineToDecimal(-150), 1e-9)
	assert.InDelta(t, 2.0, MoneylineToDecimal(100), 1e-9)
}

// Decimal odds and implied probability must be exact inverses on (1, inf).
func TestDecimalRoundTrip(t *testing.T) {
	for _, o := range []float64{1.01, 1.25, 1.5, 1.91, 2.0, 3.75, 10.0, 101.0} {
		prob := DecimalToImpliedProb(o)
		assert.InDelta(t, o, ImpliedProbToDecimal(prob), 1e-9, "odds %v", o)
	}
}

// Moneyline-to-decimal must agree with the path through implied probability.
func TestMoneylineDecimalConsistency(t *testing.T) {
	for _, ml := range []float64{-500, -150, -110, -100, 100, 110, 130, 250, 900} {
		direct := MoneylineToDecimal(ml)
		viaProb := ImpliedProbToDecimal(MoneylineToImpliedProb(ml))
		assert.InDelta(t, direct, viaProb, 1e-9, "moneyline %v", ml)
	}
}

func TestMoneylineRoundTrip(t *testing.T) {
	for _, ml := range []float64{-400, -150, 120, 300} {
		prob := MoneylineToImpliedProb(ml)
		assert.InDelta(t, ml, ImpliedProbToMoneyline(prob), 1e-6, "moneyline %v", ml)
	}
}

func TestDecimalOddsToProbability(t *testing.T) {
	assert.InDelta(t, 0.5, DecimalOddsToProbability(2.0), 1e-9)
	assert.InDelta(t, 1.0, DecimalOddsToProbability(1.0), 1e-9)
	assert.Equal(t, 0.0, DecimalOddsToProbability(0.8))
}

func TestCentsToProbability(t *testing.T) {
	assert.InDelta(t, 0.41, CentsToProbability(41), 1e-9)
	assert.Equal(t, 0.0, CentsToProbability(-3))
}
