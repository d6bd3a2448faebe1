package models

import "strings"

// GameResult is a completed game pulled from a results provider.
type GameResult struct {
	GameDate  string `db:"game_date" json:"game_date" validate:"required"`
	HomeTeam  string `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam  string `db:"away_team" json:"away_team" validate:"required"`
	HomeScore int    `db:"home_score" json:"home_score" validate:"gte=0"`
	AwayScore int    `db:"away_score" json:"away_score" validate:"gte=0"`
	Season    *string `db:"season" json:"season"`
}

// HomeWon reports whether the home side won outright.
func (g *GameResult) HomeWon() bool {
	return g.HomeScore > g.AwayScore
}

// IsFinalStatus reports whether a provider status string marks a completed
// game. Only an exact "final" or a "final/" prefix counts (e.g. "Final",
// "Final/OT"); anything else — tip-off times, "Halftime", quarters — is
// ignored by result processing.
func IsFinalStatus(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	return s == "final" || strings.HasPrefix(s, "final/")
}
