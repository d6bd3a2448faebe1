package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/elo-better/internal/database"
	"github.com/yourusername/elo-better/internal/models"
)

// PostgresRatingRepository implements RatingRepository for PostgreSQL
type PostgresRatingRepository struct {
	db *database.DB
}

// NewPostgresRatingRepository creates a new team rating repository
func NewPostgresRatingRepository(db *database.DB) RatingRepository {
	return &PostgresRatingRepository{db: db}
}

// Upsert inserts or updates a team's rating
func (r *PostgresRatingRepository) Upsert(ctx context.Context, sport models.Sport, rating *models.TeamRating) error {
	query := `
		INSERT INTO team_ratings (sport, team_name, elo_rating, last_updated)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (sport, team_name)
		DO UPDATE SET elo_rating = EXCLUDED.elo_rating, last_updated = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query, sport, rating.TeamName, rating.EloRating)
	if err != nil {
		return fmt.Errorf("failed to upsert team rating: %w", err)
	}

	return nil
}

// GetByTeam retrieves the rating row for a single team
func (r *PostgresRatingRepository) GetByTeam(ctx context.Context, sport models.Sport, teamName string) (*models.TeamRating, error) {
	query := `
		SELECT team_name, elo_rating, last_updated
		FROM team_ratings
		WHERE sport = $1 AND team_name = $2
	`

	rating := &models.TeamRating{}
	err := r.db.GetPool().QueryRow(ctx, query, sport, teamName).Scan(
		&rating.TeamName, &rating.EloRating, &rating.LastUpdated,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team rating: %w", err)
	}

	return rating, nil
}

// GetAll retrieves every stored rating for a sport
func (r *PostgresRatingRepository) GetAll(ctx context.Context, sport models.Sport) ([]*models.TeamRating, error) {
	query := `
		SELECT team_name, elo_rating, last_updated
		FROM team_ratings
		WHERE sport = $1
		ORDER BY elo_rating DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, sport)
	if err != nil {
		return nil, fmt.Errorf("failed to query team ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*models.TeamRating
	for rows.Next() {
		rating := &models.TeamRating{}
		if err := rows.Scan(&rating.TeamName, &rating.EloRating, &rating.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan team rating: %w", err)
		}
		ratings = append(ratings, rating)
	}

	return ratings, rows.Err()
}
