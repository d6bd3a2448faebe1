package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/elo-better/internal/database"
	"github.com/yourusername/elo-better/internal/models"
)

const betColumns = `id, sport, home_team, away_team, bet_type, odds, stake,
       true_probability, market_probability, edge, result, profit_loss,
       match_date, placed_at, settled_at`

// PostgresBetRepository implements BetRepository for PostgreSQL
type PostgresBetRepository struct {
	db *database.DB
}

// NewPostgresBetRepository creates a new bet repository
func NewPostgresBetRepository(db *database.DB) BetRepository {
	return &PostgresBetRepository{db: db}
}

// Create inserts a new bet
func (b *PostgresBetRepository) Create(ctx context.Context, bet *models.Bet) error {
	query := `
		INSERT INTO bets (id, sport, home_team, away_team, bet_type, odds, stake,
		                  true_probability, market_probability, edge, result, profit_loss,
		                  match_date, placed_at, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := b.db.GetPool().Exec(ctx, query,
		bet.ID, bet.Sport, bet.HomeTeam, bet.AwayTeam, bet.BetType, bet.Odds, bet.Stake,
		bet.TrueProbability, bet.MarketProbability, bet.Edge, bet.Result, bet.ProfitLoss,
		bet.MatchDate, bet.PlacedAt, bet.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create bet: %w", err)
	}

	return nil
}

// GetByID retrieves a bet by ID
func (b *PostgresBetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1`

	bet := &models.Bet{}
	err := b.db.GetPool().QueryRow(ctx, query, id).Scan(
		&bet.ID, &bet.Sport, &bet.HomeTeam, &bet.AwayTeam, &bet.BetType, &bet.Odds, &bet.Stake,
		&bet.TrueProbability, &bet.MarketProbability, &bet.Edge, &bet.Result, &bet.ProfitLoss,
		&bet.MatchDate, &bet.PlacedAt, &bet.SettledAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}

	return bet, nil
}

// Update updates the settlement fields of an existing bet
func (b *PostgresBetRepository) Update(ctx context.Context, bet *models.Bet) error {
	query := `
		UPDATE bets SET
			result = $2, profit_loss = $3, settled_at = $4
		WHERE id = $1
	`

	commandTag, err := b.db.GetPool().Exec(ctx, query,
		bet.ID, bet.Result, bet.ProfitLoss, bet.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update bet: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// GetPending retrieves all unsettled bets for a sport
func (b *PostgresBetRepository) GetPending(ctx context.Context, sport models.Sport) ([]*models.Bet, error) {
	query := `SELECT ` + betColumns + `
		FROM bets
		WHERE sport = $1 AND result IS NULL
		ORDER BY placed_at ASC
	`

	return b.queryBets(ctx, query, sport)
}

// GetSettled retrieves all settled bets for a sport
func (b *PostgresBetRepository) GetSettled(ctx context.Context, sport models.Sport) ([]*models.Bet, error) {
	query := `SELECT ` + betColumns + `
		FROM bets
		WHERE sport = $1 AND result IS NOT NULL
		ORDER BY settled_at DESC
	`

	return b.queryBets(ctx, query, sport)
}

// GetAll retrieves every bet for a sport, newest first
func (b *PostgresBetRepository) GetAll(ctx context.Context, sport models.Sport) ([]*models.Bet, error) {
	query := `SELECT ` + betColumns + `
		FROM bets
		WHERE sport = $1
		ORDER BY placed_at DESC
	`

	return b.queryBets(ctx, query, sport)
}

func (b *PostgresBetRepository) queryBets(ctx context.Context, query string, args ...interface{}) ([]*models.Bet, error) {
	rows, err := b.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets: %w", err)
	}
	defer rows.Close()

	var bets []*models.Bet
	for rows.Next() {
		bet := &models.Bet{}
		err := rows.Scan(
			&bet.ID, &bet.Sport, &bet.HomeTeam, &bet.AwayTeam, &bet.BetType, &bet.Odds, &bet.Stake,
			&bet.TrueProbability, &bet.MarketProbability, &bet.Edge, &bet.Result, &bet.ProfitLoss,
			&bet.MatchDate, &bet.PlacedAt, &bet.SettledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}

	return bets, rows.Err()
}
