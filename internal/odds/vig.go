package odds

// TwoWayProbs holds fair home/away probabilities in percent.
type TwoWayProbs struct {
	Home float64
	Away float64
}

// ThreeWayProbs holds fair home/draw/away probabilities in percent.
type ThreeWayProbs struct {
	Home float64
	Draw float64
	Away float64
}

// RemoveVigTwoWay removes the bookmaker's vig from a 2-way market by
// proportional rescaling. An all-zero input returns an even split instead of
// dividing by zero.
func RemoveVigTwoWay(homeProb, awayProb float64) TwoWayProbs {
	total := homeProb + awayProb
	if total <= 0 {
		return TwoWayProbs{Home: 50.0, Away: 50.0}
	}
	return TwoWayProbs{
		Home: (homeProb / total) * 100.0,
		Away: (awayProb / total) * 100.0,
	}
}

// RemoveVigThreeWay removes the bookmaker's overround from a 3-way market.
// A total at or below 100 is returned unchanged: a sub-100 book carries no
// margin to remove and is deliberately not scaled up.
func RemoveVigThreeWay(homeProb, drawProb, awayProb float64) ThreeWayProbs {
	total := homeProb + drawProb + awayProb
	if total <= 100.0 {
		return ThreeWayProbs{Home: homeProb, Draw: drawProb, Away: awayProb}
	}
	return ThreeWayProbs{
		Home: (homeProb / total) * 100.0,
		Draw: (drawProb / total) * 100.0,
		Away: (awayProb / total) * 100.0,
	}
}

// NormalizeTwoWay rescales a probability pair to sum to exactly 100.
func NormalizeTwoWay(homeProb, awayProb float64) TwoWayProbs {
	total := homeProb + awayProb
	if total == 0 {
		return TwoWayProbs{Home: 50.0, Away: 50.0}
	}
	return TwoWayProbs{
		Home: (homeProb / total) * 100.0,
		Away: (awayProb / total) * 100.0,
	}
}

// NormalizeThreeWay rescales a probability triple to sum to exactly 100.
func NormalizeThreeWay(homeProb, drawProb, awayProb float64) ThreeWayProbs {
	total := homeProb + drawProb + awayProb
	if total == 0 {
		return ThreeWayProbs{Home: 33.33, Draw: 33.33, Away: 33.33}
	}
	return ThreeWayProbs{
		Home: (homeProb / total) * 100.0,
		Draw: (drawProb / total) * 100.0,
		Away: (awayProb / total) * 100.0,
	}
}
