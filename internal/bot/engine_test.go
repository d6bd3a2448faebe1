package bot

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/elo-better/internal/models"
	"github.com/yourusername/elo-better/internal/predict"
	"github.com/yourusername/elo-better/internal/rating"
	"github.com/yourusername/elo-better/internal/staking"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newBasketballEngine(store *rating.Store) *Engine {
	return NewEngine(Config{
		Sport:           models.SportBasketball,
		KFactor:         20,
		InitialBankroll: 1000,
		Staking:         staking.DefaultParams(),
		Gate:            staking.Gate{MinFavoriteProb: 62.0, MinEdge: 1.0},
		TwoWayParams:    predict.DefaultTwoWayParams(),
		ThreeWayParams:  predict.DefaultThreeWayParams(),
	}, store, nil, nil, quietLogger())
}

func newSoccerEngine(store *rating.Store) *Engine {
	return NewEngine(Config{
		Sport:           models.SportSoccer,
		KFactor:         32,
		InitialBankroll: 1000,
		Staking:         staking.DefaultParams(),
		Gate:            staking.Gate{MinFavoriteProb: 55.0, MinEdge: 1.0, MinEloGap: 50.0},
		TwoWayParams:    predict.DefaultTwoWayParams(),
		ThreeWayParams:  predict.DefaultThreeWayParams(),
	}, store, nil, nil, quietLogger())
}

func moneyline(home, away float64) models.OddsInput {
	return models.OddsInput{Moneyline: &models.MoneylinePair{Home: home, Away: away}}
}

func TestAnalyzeGameRejectsBadOddsInput(t *testing.T) {
	e := newBasketballEngine(rating.NewStore(1500))

	_, err := e.AnalyzeGame(context.Background(), "Boston Celtics", "Miami Heat", models.OddsInput{}, models.GameContext{}, false)
	assert.ErrorIs(t, err, models.ErrInvalidOddsInput)

	both := models.OddsInput{
		Moneyline: &models.MoneylinePair{Home: -150, Away: 130},
		Decimal:   &models.DecimalPair{Home: 1.67, Away: 2.3},
	}
	_, err = e.AnalyzeGame(context.Background(), "Boston Celtics", "Miami Heat", both, models.GameContext{}, false)
	assert.ErrorIs(t, err, models.ErrInvalidOddsInput)
}

func TestAnalyzeGameEvenMatchupNotRecommended(t *testing.T) {
	e := newBasketballEngine(rating.NewStore(1500))

	analysis, err := e.AnalyzeGame(context.Background(), "Boston Celtics", "Miami Heat", moneyline(-150, 130), models.GameContext{}, false)
	require.NoError(t, err)

	// De-vigged -150/+130 gives the home side about 57.98% of the market.
	assert.InDelta(t, 57.983, analysis.Home.MarketProbability, 0.01)
	assert.InDelta(t, 100.0, analysis.Home.TrueProbability+analysis.Away.TrueProbability, 0.01)
	assert.True(t, analysis.CalibrationApplied)

	// Home court alone does not push an even matchup past the 62% gate.
	assert.Nil(t, analysis.Recommendation)
}

func TestAnalyzeGameStrongFavoriteRecommended(t *testing.T) {
	store := rating.NewStore(1500)
	store.SetRating("Boston Celtics", 1700)
	e := newBasketballEngine(store)

	analysis, err := e.AnalyzeGame(context.Background(), "Boston Celtics", "Miami Heat", moneyline(-150, 130), models.GameContext{}, true)
	require.NoError(t, err)

	rec := analysis.Recommendation
	require.NotNil(t, rec)
	assert.Equal(t, models.BetTypeHome, rec.BetType)
	assert.Greater(t, rec.Edge, 1.0)
	assert.InDelta(t, 1.6667, rec.Odds, 0.001)

	// Flat staking: 1.5% of the 1000 bankroll.
	assert.InDelta(t, 15.0, rec.Stake, 1e-9)
	assert.InDelta(t, rec.Stake*rec.Odds, rec.PotentialReturn, 1e-9)

	require.NotNil(t, analysis.Diagnostics)
	assert.Equal(t, 1700.0, analysis.Diagnostics.HomeRating)
	assert.Equal(t, 1750.0, analysis.Diagnostics.AdjHomeRating)
}

func TestAnalyzeGameDiagnosticsOptIn(t *testing.T) {
	e := newBasketballEngine(rating.NewStore(1500))

	analysis, err := e.AnalyzeGame(context.Background(), "Boston Celtics", "Miami Heat", moneyline(-150, 130), models.GameContext{}, false)
	require.NoError(t, err)
	assert.Nil(t, analysis.Diagnostics)
}

func TestAnalyzeMatchStrongFavoriteRecommended(t *testing.T) {
	store := rating.NewStore(1500)
	store.SetRating("Arsenal FC", 1900)
	e := newSoccerEngine(store)

	// Market prices the home side near even money while the ratings make it a
	// heavy favorite, so the model holds an edge over the fair market.
	quote := models.DecimalTriple{Home: 1.9, Draw: 3.9, Away: 4.4}
	analysis, err := e.AnalyzeMatch(context.Background(), "Arsenal FC", "Luton Town", quote, models.MatchContext{}, false)
	require.NoError(t, err)

	rec := analysis.Recommendation
	require.NotNil(t, rec)
	assert.Equal(t, models.BetTypeHome, rec.BetType)
	assert.Greater(t, rec.TrueProbability, 55.0)
	assert.Greater(t, rec.Edge, 1.0)
	require.NotNil(t, rec.EloGap)
	assert.InDelta(t, 400.0, *rec.EloGap, 1e-9)
	assert.InDelta(t, 100.0,
		analysis.Home.TrueProbability+analysis.Draw.TrueProbability+analysis.Away.TrueProbability, 0.01)
}

func TestAnalyzeMatchEloGapBlocks(t *testing.T) {
	store := rating.NewStore(1500)
	store.SetRating("Arsenal FC", 1540)

	// Permissive probability and edge thresholds so the rating gap is the
	// only check in play.
	e := NewEngine(Config{
		Sport:           models.SportSoccer,
		KFactor:         32,
		InitialBankroll: 1000,
		Staking:         staking.DefaultParams(),
		Gate:            staking.Gate{MinFavoriteProb: 40.0, MinEdge: 0.0, MinEloGap: 50.0},
		TwoWayParams:    predict.DefaultTwoWayParams(),
		ThreeWayParams:  predict.DefaultThreeWayParams(),
	}, store, nil, nil, quietLogger())

	quote := models.DecimalTriple{Home: 1.9, Draw: 3.9, Away: 4.4}
	analysis, err := e.AnalyzeMatch(context.Background(), "Arsenal FC", "Luton Town", quote, models.MatchContext{}, false)
	require.NoError(t, err)

	// A 40-point gap stays under the 50-point floor.
	assert.Nil(t, analysis.Recommendation)
}

func TestAnalyzeMatchRejectsDegenerateOdds(t *testing.T) {
	e := newSoccerEngine(rating.NewStore(1500))

	_, err := e.AnalyzeMatch(context.Background(), "Arsenal FC", "Chelsea FC",
		models.DecimalTriple{Home: 1.0, Draw: 4.2, Away: 6.5}, models.MatchContext{}, false)
	assert.ErrorIs(t, err, models.ErrInvalidOddsInput)
}

func TestPlaceBetDeductsBankroll(t *testing.T) {
	e := newBasketballEngine(rating.NewStore(1500))

	rec := &models.Recommendation{
		BetType: models.BetTypeHome, Odds: 2.0, Stake: 15,
		TrueProbability: 65, MarketProbability: 58, Edge: 7,
	}
	bet, err := e.PlaceBet(context.Background(), "Boston Celtics", "Miami Heat", rec, nil)
	require.NoError(t, err)

	assert.Equal(t, models.SportBasketball, bet.Sport)
	assert.False(t, bet.IsSettled())
	assert.InDelta(t, 985.0, e.Bankroll(), 1e-9)
}

func TestPlaceBetStakeOverBankroll(t *testing.T) {
	e := newBasketballEngine(rating.NewStore(1500))

	rec := &models.Recommendation{BetType: models.BetTypeHome, Odds: 2.0, Stake: 5000}
	_, err := e.PlaceBet(context.Background(), "Boston Celtics", "Miami Heat", rec, nil)
	assert.Error(t, err)
	assert.InDelta(t, 1000.0, e.Bankroll(), 1e-9)
}

func TestSettleBetOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		result     models.BetResult
		wantPL     float64
		wantFunds  float64
	}{
		// Stake 100 at 2.5: win returns 250, push returns 100, loss nothing.
		{"win", models.BetResultWin, 150.0, 1150.0},
		{"loss", models.BetResultLoss, -100.0, 900.0},
		{"push", models.BetResultPush, 0.0, 1000.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newBasketballEngine(rating.NewStore(1500))
			rec := &models.Recommendation{BetType: models.BetTypeHome, Odds: 2.5, Stake: 100}
			bet, err := e.PlaceBet(context.Background(), "Boston Celtics", "Miami Heat", rec, nil)
			require.NoError(t, err)

			settled, err := e.SettleBet(context.Background(), bet.ID, tt.result)
			require.NoError(t, err)

			assert.InDelta(t, tt.wantPL, settled.GetProfitLoss(), 1e-9)
			assert.InDelta(t, tt.wantFunds, e.Bankroll(), 1e-9)
			assert.NotNil(t, settled.SettledAt)
		})
	}
}

func TestSettleBetUnknownID(t *testing.T) {
	e := newBasketballEngine(rating.NewStore(1500))

	_, err := e.SettleBet(context.Background(), uuid.New(), models.BetResultWin)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSettleBetTwice(t *testing.T) {
	e := newBasketballEngine(rating.NewStore(1500))
	rec := &models.Recommendation{BetType: models.BetTypeHome, Odds: 2.0, Stake: 10}
	bet, err := e.PlaceBet(context.Background(), "Boston Celtics", "Miami Heat", rec, nil)
	require.NoError(t, err)

	_, err = e.SettleBet(context.Background(), bet.ID, models.BetResultWin)
	require.NoError(t, err)

	_, err = e.SettleBet(context.Background(), bet.ID, models.BetResultLoss)
	assert.ErrorIs(t, err, models.ErrBetAlreadySettled)
}

func TestSettleBetInvalidResult(t *testing.T) {
	e := newBasketballEngine(rating.NewStore(1500))

	_, err := e.SettleBet(context.Background(), uuid.New(), models.BetResult("void"))
	assert.ErrorIs(t, err, models.ErrInvalidBetResult)
}

func TestUpdateRatingsFromResult(t *testing.T) {
	store := rating.NewStore(1500)
	e := newBasketballEngine(store)

	result := &models.GameResult{
		GameDate: "2024-01-15", HomeTeam: "Boston Celtics", AwayTeam: "Miami Heat",
		HomeScore: 110, AwayScore: 98,
	}
	require.NoError(t, e.UpdateRatingsFromResult(context.Background(), result))

	assert.InDelta(t, 1510.0, store.Rating("Boston Celtics"), 1e-9)
	assert.InDelta(t, 1490.0, store.Rating("Miami Heat"), 1e-9)
}

func TestStatistics(t *testing.T) {
	e := newBasketballEngine(rating.NewStore(1500))
	ctx := context.Background()

	place := func(stake, oddsVal float64) *models.Bet {
		bet, err := e.PlaceBet(ctx, "Boston Celtics", "Miami Heat",
			&models.Recommendation{BetType: models.BetTypeHome, Odds: oddsVal, Stake: stake}, nil)
		require.NoError(t, err)
		return bet
	}

	won := place(100, 2.0)
	lost := place(50, 1.8)
	place(25, 2.2) // pending

	_, err := e.SettleBet(ctx, won.ID, models.BetResultWin)
	require.NoError(t, err)
	_, err = e.SettleBet(ctx, lost.ID, models.BetResultLoss)
	require.NoError(t, err)

	stats, err := e.Statistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalBets)
	assert.Equal(t, 2, stats.SettledBets)
	assert.Equal(t, 1, stats.PendingBets)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.InDelta(t, 50.0, stats.WinRate, 1e-9)
	assert.InDelta(t, 175.0, stats.TotalStaked, 1e-9)
	assert.InDelta(t, 50.0, stats.TotalProfitLoss, 1e-9)
	assert.InDelta(t, 50.0/175.0*100.0, stats.ROI, 1e-9)

	// 1000 - 175 staked + 200 returned on the win.
	assert.InDelta(t, 1025.0, stats.CurrentBankroll, 1e-9)
}
