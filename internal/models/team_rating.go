package models

import "time"

// TeamRating is a persisted (canonical team name, Elo) pair. Rows are
// upserted on every rating change and never deleted.
type TeamRating struct {
	TeamName    string    `db:"team_name" json:"team_name" validate:"required"`
	EloRating   float64   `db:"elo_rating" json:"elo_rating" validate:"required"`
	LastUpdated time.Time `db:"last_updated" json:"last_updated"`
}
