package staking

// Gate holds the recommendation thresholds. The filter is deliberately
// high-precision / low-frequency: only the single most-probable outcome is
// ever considered, never an underdog value bet with a larger edge.
type Gate struct {
	// MinFavoriteProb is the minimum model probability (percent) the favored
	// outcome must reach.
	MinFavoriteProb float64
	// MinEdge is the minimum lead (percentage points) the model must hold
	// over the market.
	MinEdge float64
	// MinEloGap, when positive, additionally requires the teams' ratings to
	// differ by at least this many Elo points.
	MinEloGap float64
}

// Approve reports whether the favored outcome clears every threshold.
// favoriteProb and edge are percentages; eloGap is the absolute rating gap.
func (g Gate) Approve(favoriteProb, edge, eloGap float64) bool {
	if favoriteProb < g.MinFavoriteProb {
		return false
	}
	if edge < g.MinEdge {
		return false
	}
	if g.MinEloGap > 0 && eloGap < g.MinEloGap {
		return false
	}
	return true
}
