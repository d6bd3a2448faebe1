package models

// GameContext carries the situational modifiers for a 2-way basketball
// prediction. Consumed once per call; never persisted.
type GameContext struct {
	// RestDiff is the extra rest days the home team has over the away team;
	// negative means away is better rested.
	RestDiff    int  `json:"rest_diff"`
	HomeB2B     bool `json:"home_b2b"`
	AwayB2B     bool `json:"away_b2b"`
	HomeStarOut bool `json:"home_star_out"`
	AwayStarOut bool `json:"away_star_out"`
}

// MatchContext carries the situational modifiers for a 3-way soccer
// prediction.
type MatchContext struct {
	// HomeForm and AwayForm are recent-form scores in [-1, 1].
	HomeForm     float64 `json:"home_form" validate:"gte=-1,lte=1"`
	AwayForm     float64 `json:"away_form" validate:"gte=-1,lte=1"`
	HomeGoalDiff int     `json:"home_goal_diff"`
	AwayGoalDiff int     `json:"away_goal_diff"`
}
