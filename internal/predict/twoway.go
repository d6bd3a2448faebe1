// Package predict converts Elo ratings into outcome probabilities. All
// contextual adjustments are additive in Elo-point space before the logistic
// transform; output probabilities are never shifted directly.
package predict

import (
	"github.com/yourusername/elo-better/internal/models"
	"github.com/yourusername/elo-better/internal/odds"
	"github.com/yourusername/elo-better/internal/rating"
)

// TwoWayParams tunes the binary-sport predictor. Values are Elo points
// except the shrink factor and the probability band (percent).
type TwoWayParams struct {
	HomeCourtElo       float64
	RestEloPerDay      float64
	B2BPenaltyElo      float64
	StarOutPenaltyElo  float64
	MarketShrinkFactor float64
	MinProbability     float64
	MaxProbability     float64
}

// DefaultTwoWayParams returns the tuned basketball constants.
func DefaultTwoWayParams() TwoWayParams {
	return TwoWayParams{
		HomeCourtElo:       50,
		RestEloPerDay:      15,
		B2BPenaltyElo:      30,
		StarOutPenaltyElo:  50,
		MarketShrinkFactor: 0.3,
		MinProbability:     5.0,
		MaxProbability:     95.0,
	}
}

// TwoWayModel predicts home/away win probabilities for a no-draw sport.
type TwoWayModel struct {
	ratings *rating.Store
	params  TwoWayParams
}

// NewTwoWayModel creates a predictor over the given rating store.
func NewTwoWayModel(ratings *rating.Store, params TwoWayParams) *TwoWayModel {
	return &TwoWayModel{ratings: ratings, params: params}
}

func (m *TwoWayModel) adjustedRatings(homeTeam, awayTeam string, ctx models.GameContext) models.Diagnostics {
	homeRating := m.ratings.Rating(homeTeam)
	awayRating := m.ratings.Rating(awayTeam)

	adjHome := homeRating + m.params.HomeCourtElo
	adjHome += float64(ctx.RestDiff) * m.params.RestEloPerDay
	if ctx.HomeB2B {
		adjHome -= m.params.B2BPenaltyElo
	}
	if ctx.HomeStarOut {
		adjHome -= m.params.StarOutPenaltyElo
	}

	adjAway := awayRating
	if ctx.AwayB2B {
		adjAway -= m.params.B2BPenaltyElo
	}
	if ctx.AwayStarOut {
		adjAway -= m.params.StarOutPenaltyElo
	}

	return models.Diagnostics{
		HomeRating:    homeRating,
		AwayRating:    awayRating,
		AdjHomeRating: adjHome,
		AdjAwayRating: adjAway,
		EloDiff:       adjHome - adjAway,
		RawHomeWinP:   rating.ExpectedScore(adjHome, adjAway),
	}
}

// Predict returns home/away win probabilities in percent, summing to 100.
// Clamping to the configured band always precedes a renormalization, and
// calibration (when market probabilities are supplied and the shrink factor
// is positive) renormalizes again afterwards. The diagnostics value exposes
// the adjusted ratings and the raw pre-calibration probability.
func (m *TwoWayModel) Predict(homeTeam, awayTeam string, ctx models.GameContext, market *odds.TwoWayProbs) (odds.TwoWayProbs, models.Diagnostics) {
	diag := m.adjustedRatings(homeTeam, awayTeam, ctx)
	homeWinP := diag.RawHomeWinP

	homeProb := clamp(homeWinP*100.0, m.params.MinProbability, m.params.MaxProbability)
	awayProb := clamp((1.0-homeWinP)*100.0, m.params.MinProbability, m.params.MaxProbability)

	probs := odds.NormalizeTwoWay(homeProb, awayProb)

	if market != nil && m.params.MarketShrinkFactor > 0 {
		shrink := m.params.MarketShrinkFactor
		calHome := (1.0-shrink)*probs.Home + shrink*market.Home
		calAway := (1.0-shrink)*probs.Away + shrink*market.Away
		probs = odds.NormalizeTwoWay(calHome, calAway)
	}

	return probs, diag
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
