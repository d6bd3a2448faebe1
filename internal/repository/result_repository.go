package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/elo-better/internal/database"
	"github.com/yourusername/elo-better/internal/models"
)

// PostgresResultRepository implements ResultRepository for PostgreSQL
type PostgresResultRepository struct {
	db *database.DB
}

// NewPostgresResultRepository creates a new game result repository
func NewPostgresResultRepository(db *database.DB) ResultRepository {
	return &PostgresResultRepository{db: db}
}

// Create inserts a game result, ignoring duplicates of the same fixture
func (r *PostgresResultRepository) Create(ctx context.Context, sport models.Sport, result *models.GameResult) error {
	query := `
		INSERT INTO game_results (sport, game_date, home_team, away_team, home_score, away_score, season)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (sport, game_date, home_team, away_team) DO NOTHING
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		sport, result.GameDate, result.HomeTeam, result.AwayTeam,
		result.HomeScore, result.AwayScore, result.Season,
	)
	if err != nil {
		return fmt.Errorf("failed to create game result: %w", err)
	}

	return nil
}

// Exists reports whether a result for the same fixture is already stored
func (r *PostgresResultRepository) Exists(ctx context.Context, sport models.Sport, result *models.GameResult) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM game_results
			WHERE sport = $1 AND game_date = $2 AND home_team = $3 AND away_team = $4
		)
	`

	var exists bool
	err := r.db.GetPool().QueryRow(ctx, query,
		sport, result.GameDate, result.HomeTeam, result.AwayTeam,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check game result: %w", err)
	}

	return exists, nil
}

// GetByDate retrieves all stored results for a sport on a given date
func (r *PostgresResultRepository) GetByDate(ctx context.Context, sport models.Sport, gameDate string) ([]*models.GameResult, error) {
	query := `
		SELECT game_date, home_team, away_team, home_score, away_score, season
		FROM game_results
		WHERE sport = $1 AND game_date = $2
		ORDER BY home_team
	`

	rows, err := r.db.GetPool().Query(ctx, query, sport, gameDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query game results: %w", err)
	}
	defer rows.Close()

	var results []*models.GameResult
	for rows.Next() {
		result := &models.GameResult{}
		err := rows.Scan(
			&result.GameDate, &result.HomeTeam, &result.AwayTeam,
			&result.HomeScore, &result.AwayScore, &result.Season,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}
