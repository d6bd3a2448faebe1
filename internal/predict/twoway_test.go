package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/elo-better/internal/models"
	"github.com/yourusername/elo-better/internal/odds"
	"github.com/yourusername/elo-better/internal/rating"
)

func newTwoWay() *TwoWayModel {
	return NewTwoWayModel(rating.NewStore(1500), DefaultTwoWayParams())
}

func TestTwoWayPredictSumsTo100(t *testing.T) {
	m := newTwoWay()
	probs, _ := m.Predict("Boston Celtics", "Miami Heat", models.GameContext{}, nil)
	assert.InDelta(t, 100.0, probs.Home+probs.Away, 0.01)
}

func TestTwoWayHomeCourtFavorsHome(t *testing.T) {
	m := newTwoWay()
	probs, diag := m.Predict("Boston Celtics", "Miami Heat", models.GameContext{}, nil)

	// Equal base ratings: the home bonus alone must tip the prediction.
	assert.Greater(t, probs.Home, probs.Away)
	assert.Equal(t, 1500.0, diag.HomeRating)
	assert.Equal(t, 1550.0, diag.AdjHomeRating)
}

func TestTwoWayBackToBackLowersHomeProb(t *testing.T) {
	m := newTwoWay()
	base, _ := m.Predict("Boston Celtics", "Miami Heat", models.GameContext{}, nil)
	b2b, _ := m.Predict("Boston Celtics", "Miami Heat", models.GameContext{HomeB2B: true}, nil)

	assert.Less(t, b2b.Home, base.Home)
}

func TestTwoWayRestDifferential(t *testing.T) {
	m := newTwoWay()
	rested, diag := m.Predict("Boston Celtics", "Miami Heat", models.GameContext{RestDiff: 2}, nil)
	base, _ := m.Predict("Boston Celtics", "Miami Heat", models.GameContext{}, nil)

	assert.Greater(t, rested.Home, base.Home)
	assert.Equal(t, 1580.0, diag.AdjHomeRating) // 1500 + 50 home + 2*15 rest
}

func TestTwoWayStarOutPenalty(t *testing.T) {
	m := newTwoWay()
	base, _ := m.Predict("Boston Celtics", "Miami Heat", models.GameContext{}, nil)
	out, _ := m.Predict("Boston Celtics", "Miami Heat", models.GameContext{AwayStarOut: true}, nil)

	assert.Greater(t, out.Home, base.Home)
}

func TestTwoWayClampAndRenormalize(t *testing.T) {
	store := rating.NewStore(1500)
	store.SetRating("Juggernauts", 2500)
	m := NewTwoWayModel(store, DefaultTwoWayParams())

	probs, _ := m.Predict("Juggernauts", "Miami Heat", models.GameContext{}, nil)

	// A 1000-point gap saturates the band; the pair still sums to 100 and
	// stays inside [5, 95].
	assert.InDelta(t, 100.0, probs.Home+probs.Away, 0.01)
	assert.LessOrEqual(t, probs.Home, 95.0)
	assert.GreaterOrEqual(t, probs.Away, 5.0)
}

func TestTwoWayCalibrationShrinksTowardMarket(t *testing.T) {
	m := newTwoWay()
	raw, _ := m.Predict("Boston Celtics", "Miami Heat", models.GameContext{}, nil)

	market := &odds.TwoWayProbs{Home: 50.0, Away: 50.0}
	calibrated, _ := m.Predict("Boston Celtics", "Miami Heat", models.GameContext{}, market)

	// Blending toward an even market pulls the home edge in.
	assert.Less(t, calibrated.Home, raw.Home)
	assert.Greater(t, calibrated.Home, market.Home)
	assert.InDelta(t, 100.0, calibrated.Home+calibrated.Away, 0.01)
}

func TestTwoWayZeroShrinkSkipsCalibration(t *testing.T) {
	params := DefaultTwoWayParams()
	params.MarketShrinkFactor = 0
	m := NewTwoWayModel(rating.NewStore(1500), params)

	market := &odds.TwoWayProbs{Home: 50.0, Away: 50.0}
	withMarket, _ := m.Predict("Boston Celtics", "Miami Heat", models.GameContext{}, market)
	without, _ := m.Predict("Boston Celtics", "Miami Heat", models.GameContext{}, nil)

	assert.Equal(t, without, withMarket)
}
