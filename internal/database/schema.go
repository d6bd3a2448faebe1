package database

import (
	"context"
	"fmt"
)

// schemaStatements creates the tables on first run. Kept as plain DDL so a
// fresh database works without a separate migration tool.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS bets (
		id UUID PRIMARY KEY,
		sport TEXT NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		bet_type TEXT NOT NULL,
		odds DOUBLE PRECISION NOT NULL,
		stake DOUBLE PRECISION NOT NULL,
		true_probability DOUBLE PRECISION NOT NULL DEFAULT 0,
		market_probability DOUBLE PRECISION NOT NULL DEFAULT 0,
		edge DOUBLE PRECISION NOT NULL DEFAULT 0,
		result TEXT,
		profit_loss DOUBLE PRECISION,
		match_date TEXT,
		placed_at TIMESTAMPTZ NOT NULL,
		settled_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bets_sport ON bets (sport)`,
	`CREATE INDEX IF NOT EXISTS idx_bets_pending ON bets (placed_at) WHERE result IS NULL`,
	`CREATE TABLE IF NOT EXISTS team_ratings (
		sport TEXT NOT NULL,
		team_name TEXT NOT NULL,
		elo_rating DOUBLE PRECISION NOT NULL,
		last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (sport, team_name)
	)`,
	`CREATE TABLE IF NOT EXISTS game_results (
		id BIGSERIAL PRIMARY KEY,
		sport TEXT NOT NULL,
		game_date TEXT NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		home_score INT NOT NULL,
		away_score INT NOT NULL,
		season TEXT,
		UNIQUE (sport, game_date, home_team, away_team)
	)`,
}

// EnsureSchema creates the application tables if they do not already exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
