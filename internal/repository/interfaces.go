package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/elo-better/internal/models"
)

// BetRepository defines the interface for bet data access
type BetRepository interface {
	Create(ctx context.Context, bet *models.Bet) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bet, error)
	Update(ctx context.Context, bet *models.Bet) error
	GetPending(ctx context.Context, sport models.Sport) ([]*models.Bet, error)
	GetSettled(ctx context.Context, sport models.Sport) ([]*models.Bet, error)
	GetAll(ctx context.Context, sport models.Sport) ([]*models.Bet, error)
}

// RatingRepository defines the interface for team rating data access
type RatingRepository interface {
	Upsert(ctx context.Context, sport models.Sport, rating *models.TeamRating) error
	GetByTeam(ctx context.Context, sport models.Sport, teamName string) (*models.TeamRating, error)
	GetAll(ctx context.Context, sport models.Sport) ([]*models.TeamRating, error)
}

// ResultRepository defines the interface for game result data access
type ResultRepository interface {
	Create(ctx context.Context, sport models.Sport, result *models.GameResult) error
	Exists(ctx context.Context, sport models.Sport, result *models.GameResult) (bool, error)
	GetByDate(ctx context.Context, sport models.Sport, gameDate string) ([]*models.GameResult, error)
}
