package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/elo-better/internal/metrics"
	"github.com/yourusername/elo-better/internal/models"
	"github.com/yourusername/elo-better/internal/rating"
)

// PlaceBet records a bet from a recommendation and deducts the stake from
// the bankroll.
func (e *Engine) PlaceBet(ctx context.Context, homeTeam, awayTeam string, rec *models.Recommendation, matchDate *string) (*models.Bet, error) {
	if rec == nil {
		return nil, fmt.Errorf("cannot place a bet without a recommendation")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if rec.Stake > e.bankroll {
		return nil, fmt.Errorf("stake %.2f exceeds bankroll %.2f", rec.Stake, e.bankroll)
	}

	bet := &models.Bet{
		ID:                uuid.New(),
		Sport:             e.cfg.Sport,
		HomeTeam:          rating.CanonicalTeamName(homeTeam),
		AwayTeam:          rating.CanonicalTeamName(awayTeam),
		BetType:           rec.BetType,
		Odds:              rec.Odds,
		Stake:             rec.Stake,
		TrueProbability:   rec.TrueProbability,
		MarketProbability: rec.MarketProbability,
		Edge:              rec.Edge,
		MatchDate:         matchDate,
		PlacedAt:          time.Now().UTC(),
	}

	if err := e.saveBet(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to record bet: %w", err)
	}

	e.bankroll -= rec.Stake
	metrics.RecordBetPlaced(string(e.cfg.Sport))
	metrics.UpdateBankroll(string(e.cfg.Sport), e.bankroll)

	e.logger.WithFields(logrus.Fields{
		"bet_id":   bet.ID,
		"bet_type": bet.BetType,
		"odds":     bet.Odds,
		"stake":    bet.Stake,
		"bankroll": e.bankroll,
	}).Info("Bet placed")

	return bet, nil
}

// SettleBet records the outcome of a bet and credits the bankroll. A win
// returns stake plus profit, a push returns the stake, a loss returns
// nothing (the stake left the bankroll at placement). Settling an unknown
// bet id is an error, as is settling twice.
func (e *Engine) SettleBet(ctx context.Context, id uuid.UUID, result models.BetResult) (*models.Bet, error) {
	if !result.Valid() {
		return nil, models.ErrInvalidBetResult
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	bet, err := e.getBet(ctx, id)
	if err != nil {
		return nil, err
	}
	if bet.IsSettled() {
		return nil, models.ErrBetAlreadySettled
	}

	var profitLoss float64
	switch result {
	case models.BetResultWin:
		profitLoss = bet.Stake * (bet.Odds - 1.0)
		e.bankroll += bet.Stake + profitLoss
	case models.BetResultLoss:
		profitLoss = -bet.Stake
	case models.BetResultPush:
		profitLoss = 0
		e.bankroll += bet.Stake
	}

	now := time.Now().UTC()
	bet.Result = &result
	bet.ProfitLoss = &profitLoss
	bet.SettledAt = &now

	if err := e.updateBet(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to settle bet: %w", err)
	}

	metrics.RecordBetSettled(string(e.cfg.Sport), string(result))
	metrics.UpdateBankroll(string(e.cfg.Sport), e.bankroll)

	e.logger.WithFields(logrus.Fields{
		"bet_id":      bet.ID,
		"result":      result,
		"profit_loss": profitLoss,
		"bankroll":    e.bankroll,
	}).Info("Bet settled")

	return bet, nil
}

// UpdateRatingsFromResult applies a final game to the Elo store and, when a
// repository is wired, persists the moved ratings.
func (e *Engine) UpdateRatingsFromResult(ctx context.Context, result *models.GameResult) error {
	home := rating.CanonicalTeamName(result.HomeTeam)
	away := rating.CanonicalTeamName(result.AwayTeam)

	ratingHome := e.store.Rating(home)
	ratingAway := e.store.Rating(away)

	var newHome, newAway float64
	if e.cfg.Sport == models.SportSoccer {
		newHome, newAway = rating.UpdateThreeWay(ratingHome, ratingAway, result.HomeScore, result.AwayScore, e.cfg.KFactor)
	} else {
		newHome, newAway = rating.UpdateTwoWay(ratingHome, ratingAway, result.HomeWon(), e.cfg.KFactor, 0)
	}

	e.store.SetRating(home, newHome)
	e.store.SetRating(away, newAway)
	metrics.RecordResultSynced(string(e.cfg.Sport))
	metrics.UpdateTrackedTeams(string(e.cfg.Sport), e.store.Len())

	if e.ratingRepo != nil {
		for team, elo := range map[string]float64{home: newHome, away: newAway} {
			tr := &models.TeamRating{TeamName: team, EloRating: elo, LastUpdated: time.Now().UTC()}
			if err := e.ratingRepo.Upsert(ctx, e.cfg.Sport, tr); err != nil {
				return fmt.Errorf("failed to persist rating for %s: %w", team, err)
			}
		}
	}

	e.logger.WithFields(logrus.Fields{
		"home":     home,
		"away":     away,
		"home_elo": newHome,
		"away_elo": newAway,
	}).Debug("Ratings updated from result")

	return nil
}

// Statistics aggregates the bet ledger into summary figures
func (e *Engine) Statistics(ctx context.Context) (*models.BettingStats, error) {
	e.mu.Lock()
	bankroll := e.bankroll
	e.mu.Unlock()

	bets, err := e.listBets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bets: %w", err)
	}

	stats := &models.BettingStats{
		TotalBets:       len(bets),
		CurrentBankroll: bankroll,
	}

	for _, bet := range bets {
		stats.TotalStaked += bet.Stake
		if !bet.IsSettled() {
			stats.PendingBets++
			continue
		}

		stats.SettledBets++
		stats.TotalProfitLoss += bet.GetProfitLoss()
		switch *bet.Result {
		case models.BetResultWin:
			stats.Wins++
		case models.BetResultLoss:
			stats.Losses++
		}
	}

	// Pushes count as settled but neither win nor lose.
	if decided := stats.Wins + stats.Losses; decided > 0 {
		stats.WinRate = float64(stats.Wins) / float64(decided) * 100.0
	}
	if stats.TotalStaked > 0 {
		stats.ROI = stats.TotalProfitLoss / stats.TotalStaked * 100.0
	}

	return stats, nil
}
