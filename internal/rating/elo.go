package rating

// UpdateTwoWay applies a single Elo update after a binary-result game.
// homeAdv is a fixed bonus in Elo points baked into the expected score; pass
// 0 to rate on base ratings only. The update is pure, symmetric, and
// zero-sum: the away delta is the exact negation of the home delta.
func UpdateTwoWay(ratingHome, ratingAway float64, homeWon bool, k, homeAdv float64) (float64, float64) {
	expectedHome := ExpectedScore(ratingHome+homeAdv, ratingAway)

	actualHome := 0.0
	if homeWon {
		actualHome = 1.0
	}

	newHome := ratingHome + k*(actualHome-expectedHome)
	newAway := ratingAway + k*((1.0-actualHome)-(1.0-expectedHome))
	return newHome, newAway
}

// UpdateThreeWay applies a single Elo update after a match that can draw.
// Actual scores are 1/0.5/0 for win/draw/loss.
func UpdateThreeWay(ratingHome, ratingAway float64, homeScore, awayScore int, k float64) (float64, float64) {
	expectedHome := ExpectedScore(ratingHome, ratingAway)
	expectedAway := 1.0 - expectedHome

	var actualHome, actualAway float64
	switch {
	case homeScore > awayScore:
		actualHome, actualAway = 1.0, 0.0
	case homeScore < awayScore:
		actualHome, actualAway = 0.0, 1.0
	default:
		actualHome, actualAway = 0.5, 0.5
	}

	newHome := ratingHome + k*(actualHome-expectedHome)
	newAway := ratingAway + k*(actualAway-expectedAway)
	return newHome, newAway
}
