package bot

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/elo-better/internal/metrics"
	"github.com/yourusername/elo-better/internal/models"
	"github.com/yourusername/elo-better/internal/odds"
	"github.com/yourusername/elo-better/internal/rating"
	"github.com/yourusername/elo-better/internal/staking"
)

// AnalyzeGame runs the 2-way pipeline for a basketball game: implied
// probabilities from the quote, vig removal, Elo prediction calibrated toward
// the fair market, edge computation, and gated stake sizing.
func (e *Engine) AnalyzeGame(ctx context.Context, homeTeam, awayTeam string, quote models.OddsInput, gameCtx models.GameContext, withDiagnostics bool) (*models.GameAnalysis, error) {
	if err := quote.Validate(); err != nil {
		return nil, err
	}

	var impliedHome, impliedAway, decimalHome, decimalAway float64
	if quote.Moneyline != nil {
		if quote.Moneyline.Home == 0 || quote.Moneyline.Away == 0 {
			return nil, models.ErrInvalidOddsInput
		}
		impliedHome = odds.MoneylineToImpliedProb(quote.Moneyline.Home)
		impliedAway = odds.MoneylineToImpliedProb(quote.Moneyline.Away)
		decimalHome = odds.MoneylineToDecimal(quote.Moneyline.Home)
		decimalAway = odds.MoneylineToDecimal(quote.Moneyline.Away)
	} else {
		if quote.Decimal.Home <= 1.0 || quote.Decimal.Away <= 1.0 {
			return nil, models.ErrInvalidOddsInput
		}
		impliedHome = odds.DecimalToImpliedProb(quote.Decimal.Home)
		impliedAway = odds.DecimalToImpliedProb(quote.Decimal.Away)
		decimalHome = quote.Decimal.Home
		decimalAway = quote.Decimal.Away
	}

	home := rating.CanonicalTeamName(homeTeam)
	away := rating.CanonicalTeamName(awayTeam)

	fair := odds.RemoveVigTwoWay(impliedHome, impliedAway)
	probs, diag := e.twoWay.Predict(home, away, gameCtx, &fair)

	analysis := &models.GameAnalysis{
		HomeTeam: home,
		AwayTeam: away,
		Home: models.OutcomeView{
			TrueProbability:   probs.Home,
			MarketProbability: fair.Home,
			Edge:              staking.Edge(probs.Home, fair.Home),
		},
		Away: models.OutcomeView{
			TrueProbability:   probs.Away,
			MarketProbability: fair.Away,
			Edge:              staking.Edge(probs.Away, fair.Away),
		},
		HomeRating:         diag.HomeRating,
		AwayRating:         diag.AwayRating,
		CalibrationApplied: e.cfg.TwoWayParams.MarketShrinkFactor > 0,
	}
	if withDiagnostics {
		d := diag
		analysis.Diagnostics = &d
	}

	// Only the single most-probable outcome is ever considered for a bet.
	betType, view, betOdds := models.BetTypeHome, analysis.Home, decimalHome
	if probs.Away > probs.Home {
		betType, view, betOdds = models.BetTypeAway, analysis.Away, decimalAway
	}

	analysis.Recommendation = e.recommend(betType, view, betOdds, 0)
	metrics.RecordAnalysis(string(e.cfg.Sport), analysis.Recommendation != nil)

	e.logger.WithFields(logrus.Fields{
		"home":        home,
		"away":        away,
		"home_prob":   probs.Home,
		"away_prob":   probs.Away,
		"recommended": analysis.Recommendation != nil,
	}).Debug("Game analyzed")

	return analysis, nil
}

// AnalyzeMatch runs the 3-way pipeline for a soccer match. The betting gate
// additionally requires a minimum Elo gap between the sides.
func (e *Engine) AnalyzeMatch(ctx context.Context, homeTeam, awayTeam string, quote models.DecimalTriple, matchCtx models.MatchContext, withDiagnostics bool) (*models.MatchAnalysis, error) {
	if quote.Home <= 1.0 || quote.Draw <= 1.0 || quote.Away <= 1.0 {
		return nil, models.ErrInvalidOddsInput
	}

	home := rating.CanonicalTeamName(homeTeam)
	away := rating.CanonicalTeamName(awayTeam)

	fair := odds.RemoveVigThreeWay(
		odds.DecimalToImpliedProb(quote.Home),
		odds.DecimalToImpliedProb(quote.Draw),
		odds.DecimalToImpliedProb(quote.Away),
	)
	probs, diag := e.threeWay.Predict(home, away, matchCtx, &fair)

	analysis := &models.MatchAnalysis{
		HomeTeam: home,
		AwayTeam: away,
		Home: models.OutcomeView{
			TrueProbability:   probs.Home,
			MarketProbability: fair.Home,
			Edge:              staking.Edge(probs.Home, fair.Home),
		},
		Draw: models.OutcomeView{
			TrueProbability:   probs.Draw,
			MarketProbability: fair.Draw,
			Edge:              staking.Edge(probs.Draw, fair.Draw),
		},
		Away: models.OutcomeView{
			TrueProbability:   probs.Away,
			MarketProbability: fair.Away,
			Edge:              staking.Edge(probs.Away, fair.Away),
		},
		HomeRating:         diag.HomeRating,
		AwayRating:         diag.AwayRating,
		CalibrationApplied: e.cfg.ThreeWayParams.MarketShrinkFactor > 0,
	}
	if withDiagnostics {
		d := diag
		analysis.Diagnostics = &d
	}

	betType, view, betOdds := models.BetTypeHome, analysis.Home, quote.Home
	if probs.Draw > view.TrueProbability {
		betType, view, betOdds = models.BetTypeDraw, analysis.Draw, quote.Draw
	}
	if probs.Away > view.TrueProbability {
		betType, view, betOdds = models.BetTypeAway, analysis.Away, quote.Away
	}

	// The Elo gap gate works on base ratings, before situational adjustments.
	eloGap := math.Abs(diag.HomeRating - diag.AwayRating)
	if rec := e.recommend(betType, view, betOdds, eloGap); rec != nil {
		gap := eloGap
		rec.EloGap = &gap
		analysis.Recommendation = rec
	}
	metrics.RecordAnalysis(string(e.cfg.Sport), analysis.Recommendation != nil)

	e.logger.WithFields(logrus.Fields{
		"home":        home,
		"away":        away,
		"home_prob":   probs.Home,
		"draw_prob":   probs.Draw,
		"away_prob":   probs.Away,
		"elo_gap":     eloGap,
		"recommended": analysis.Recommendation != nil,
	}).Debug("Match analyzed")

	return analysis, nil
}

// recommend applies the gate and sizes the stake for the favored outcome
func (e *Engine) recommend(betType models.BetType, view models.OutcomeView, betOdds, eloGap float64) *models.Recommendation {
	if !e.cfg.Gate.Approve(view.TrueProbability, view.Edge, eloGap) {
		return nil
	}

	e.mu.Lock()
	bankroll := e.bankroll
	e.mu.Unlock()

	stake := staking.BetSize(bankroll, view.TrueProbability/100.0, betOdds, e.cfg.Staking)
	if stake <= 0 {
		return nil
	}

	return &models.Recommendation{
		BetType:           betType,
		Odds:              betOdds,
		Stake:             stake,
		Edge:              view.Edge,
		TrueProbability:   view.TrueProbability,
		MarketProbability: view.MarketProbability,
		PotentialReturn:   stake * betOdds,
		PotentialProfit:   stake * (betOdds - 1.0),
	}
}
