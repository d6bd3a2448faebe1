package models

// Recommendation is the sized bet suggested by an analysis, or nil when the
// gating filters reject every outcome.
type Recommendation struct {
	BetType           BetType `json:"bet_type"`
	Odds              float64 `json:"odds"`
	Stake             float64 `json:"stake"`
	Edge              float64 `json:"edge"`
	TrueProbability   float64 `json:"true_probability"`
	MarketProbability float64 `json:"market_probability"`
	PotentialReturn   float64 `json:"potential_return"`
	PotentialProfit   float64 `json:"potential_profit"`
	// EloGap is populated for soccer recommendations, where the gating
	// additionally requires a minimum rating gap.
	EloGap *float64 `json:"elo_gap,omitempty"`
}

// OutcomeView pairs the model's probability with the market's for one
// outcome, plus the edge between them in percentage points.
type OutcomeView struct {
	TrueProbability   float64 `json:"true_probability"`
	MarketProbability float64 `json:"market_probability"`
	Edge              float64 `json:"edge"`
}

// Diagnostics exposes the intermediate values behind a prediction when the
// caller opts in. Returned alongside the analysis, never folded into it.
type Diagnostics struct {
	HomeRating        float64 `json:"home_rating"`
	AwayRating        float64 `json:"away_rating"`
	AdjHomeRating     float64 `json:"adj_home_rating"`
	AdjAwayRating     float64 `json:"adj_away_rating"`
	EloDiff           float64 `json:"elo_diff"`
	RawHomeWinP       float64 `json:"raw_home_win_p"`
}

// GameAnalysis is the structured 2-way prediction result.
type GameAnalysis struct {
	HomeTeam           string          `json:"home_team"`
	AwayTeam           string          `json:"away_team"`
	Home               OutcomeView     `json:"home"`
	Away               OutcomeView     `json:"away"`
	HomeRating         float64         `json:"home_rating"`
	AwayRating         float64         `json:"away_rating"`
	Recommendation     *Recommendation `json:"recommendation"`
	CalibrationApplied bool            `json:"calibration_applied"`
	Diagnostics        *Diagnostics    `json:"diagnostics,omitempty"`
}

// MatchAnalysis is the structured 3-way prediction result.
type MatchAnalysis struct {
	HomeTeam           string          `json:"home_team"`
	AwayTeam           string          `json:"away_team"`
	Home               OutcomeView     `json:"home"`
	Draw               OutcomeView     `json:"draw"`
	Away               OutcomeView     `json:"away"`
	HomeRating         float64         `json:"home_rating"`
	AwayRating         float64         `json:"away_rating"`
	Recommendation     *Recommendation `json:"recommendation"`
	CalibrationApplied bool            `json:"calibration_applied"`
	Diagnostics        *Diagnostics    `json:"diagnostics,omitempty"`
}
