package predict

import (
	"math"

	"github.com/yourusername/elo-better/internal/models"
	"github.com/yourusername/elo-better/internal/odds"
	"github.com/yourusername/elo-better/internal/rating"
)

// ThreeWayParams tunes the draw-capable predictor. The draw split is an
// empirically tuned heuristic with asymmetric clamping bands; the constants
// and branch structure are load-bearing and must not be "improved".
type ThreeWayParams struct {
	// HomeAdvantage is a fraction converted to Elo points at 400 per unit.
	HomeAdvantage      float64
	FormEloScale       float64
	GoalDiffEloPerGoal float64
	GoalDiffCap        int
	DrawBase           float64
	MarketShrinkFactor float64
	MinProbability     float64
	MaxProbability     float64
	MinDrawProbability float64
	MaxDrawProbability float64
}

// DefaultThreeWayParams returns the tuned soccer constants.
func DefaultThreeWayParams() ThreeWayParams {
	return ThreeWayParams{
		HomeAdvantage:      0.15,
		FormEloScale:       100,
		GoalDiffEloPerGoal: 5,
		GoalDiffCap:        5,
		DrawBase:           0.25,
		MarketShrinkFactor: 0.3,
		MinProbability:     5.0,
		MaxProbability:     85.0,
		MinDrawProbability: 10.0,
		MaxDrawProbability: 40.0,
	}
}

// ThreeWayModel predicts home/draw/away probabilities.
type ThreeWayModel struct {
	ratings *rating.Store
	params  ThreeWayParams
}

// NewThreeWayModel creates a predictor over the given rating store.
func NewThreeWayModel(ratings *rating.Store, params ThreeWayParams) *ThreeWayModel {
	return &ThreeWayModel{ratings: ratings, params: params}
}

// Predict returns home/draw/away probabilities in percent, summing to 100.
// The home side gets the home-advantage bonus, both sides a form nudge, and
// the home side a capped goal-differential nudge, all in Elo points. The
// logistic win expectation is then split three ways around the base draw
// probability, clamped to the asymmetric bands, renormalized, and optionally
// calibrated toward the market (renormalizing again).
func (m *ThreeWayModel) Predict(homeTeam, awayTeam string, ctx models.MatchContext, market *odds.ThreeWayProbs) (odds.ThreeWayProbs, models.Diagnostics) {
	homeRating := m.ratings.Rating(homeTeam)
	awayRating := m.ratings.Rating(awayTeam)

	adjHome := homeRating + m.params.HomeAdvantage*400.0
	adjHome += ctx.HomeForm * m.params.FormEloScale
	adjAway := awayRating + ctx.AwayForm*m.params.FormEloScale

	goalDiff := float64(clampInt(ctx.HomeGoalDiff-ctx.AwayGoalDiff, -m.params.GoalDiffCap, m.params.GoalDiffCap))
	adjHome += goalDiff * m.params.GoalDiffEloPerGoal

	homeWinExp := rating.ExpectedScore(adjHome, adjAway)

	// Linear split keyed on distance from an even expectation: the favored
	// side takes 35-65%, the draw share shrinks as the favorite strengthens,
	// the remainder goes to the other side. Mirror-imaged branches.
	var homeProb, drawProb, awayProb float64
	dist := math.Abs(homeWinExp - 0.5)
	drawProb = m.params.DrawBase * 100.0 * (1.0 - dist*0.5)
	if homeWinExp > 0.5 {
		homeProb = 35.0 + (homeWinExp-0.5)*60.0
		awayProb = 100.0 - homeProb - drawProb
	} else {
		awayProb = 35.0 + (0.5-homeWinExp)*60.0
		homeProb = 100.0 - awayProb - drawProb
	}

	homeProb = clamp(homeProb, m.params.MinProbability, m.params.MaxProbability)
	drawProb = clamp(drawProb, m.params.MinDrawProbability, m.params.MaxDrawProbability)
	awayProb = clamp(awayProb, m.params.MinProbability, m.params.MaxProbability)

	probs := odds.NormalizeThreeWay(homeProb, drawProb, awayProb)

	if market != nil && m.params.MarketShrinkFactor > 0 {
		shrink := m.params.MarketShrinkFactor
		calHome := (1.0-shrink)*probs.Home + shrink*market.Home
		calDraw := (1.0-shrink)*probs.Draw + shrink*market.Draw
		calAway := (1.0-shrink)*probs.Away + shrink*market.Away
		probs = odds.NormalizeThreeWay(calHome, calDraw, calAway)
	}

	diag := models.Diagnostics{
		HomeRating:    homeRating,
		AwayRating:    awayRating,
		AdjHomeRating: adjHome,
		AdjAwayRating: adjAway,
		EloDiff:       adjHome - adjAway,
		RawHomeWinP:   homeWinExp,
	}
	return probs, diag
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
