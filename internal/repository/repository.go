package repository

import (
	"fmt"

	"github.com/yourusername/elo-better/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Bet    BetRepository
	Rating RatingRepository
	Result ResultRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Bet:    NewPostgresBetRepository(db),
		Rating: NewPostgresRatingRepository(db),
		Result: NewPostgresResultRepository(db),
	}, nil
}
