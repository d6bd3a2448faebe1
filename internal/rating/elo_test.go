package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateTwoWayHomeWin(t *testing.T) {
	newHome, newAway := UpdateTwoWay(1500, 1500, true, 20, 50)

	// Winner gains, loser drops, even with a home bonus in the expectation.
	assert.Greater(t, newHome, 1500.0)
	assert.Less(t, newAway, 1500.0)
}

func TestUpdateTwoWayZeroSum(t *testing.T) {
	for _, homeWon := range []bool{true, false} {
		newHome, newAway := UpdateTwoWay(1580, 1440, homeWon, 20, 0)
		assert.InDelta(t, -(newAway - 1440), newHome-1580, 1e-12)
	}
}

func TestUpdateTwoWayUpsetMovesMore(t *testing.T) {
	// An underdog win shifts ratings further than a favorite win.
	favHome, _ := UpdateTwoWay(1600, 1400, true, 20, 0)
	dogHome, _ := UpdateTwoWay(1600, 1400, false, 20, 0)

	favGain := favHome - 1600
	dogLoss := 1600 - dogHome
	assert.Greater(t, dogLoss, favGain)
}

func TestUpdateThreeWay(t *testing.T) {
	tests := []struct {
		name       string
		homeScore  int
		awayScore  int
		homeRises  bool
		awayRises  bool
	}{
		{"Home win", 2, 0, true, false},
		{"Away win", 0, 1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newHome, newAway := UpdateThreeWay(1500, 1500, tt.homeScore, tt.awayScore, 32)
			assert.Equal(t, tt.homeRises, newHome > 1500)
			assert.Equal(t, tt.awayRises, newAway > 1500)
		})
	}
}

func TestUpdateThreeWayDraw(t *testing.T) {
	// A draw between equals changes nothing.
	newHome, newAway := UpdateThreeWay(1500, 1500, 1, 1, 32)
	assert.InDelta(t, 1500.0, newHome, 1e-12)
	assert.InDelta(t, 1500.0, newAway, 1e-12)

	// A draw pulls the stronger side down toward the weaker.
	newHome, newAway = UpdateThreeWay(1650, 1450, 0, 0, 32)
	assert.Less(t, newHome, 1650.0)
	assert.Greater(t, newAway, 1450.0)
}

func TestUpdateIsOrderIndependent(t *testing.T) {
	// Computing home's update must not depend on away's having been applied.
	h1, a1 := UpdateTwoWay(1520, 1480, true, 20, 0)
	h2, a2 := UpdateTwoWay(1520, 1480, true, 20, 0)
	assert.Equal(t, h1, h2)
	assert.Equal(t, a1, a2)
}
