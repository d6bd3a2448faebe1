// Package bot orchestrates the betting engine: it turns market quotes and
// Elo ratings into analyses, sizes and records bets, settles them against
// the bankroll, and feeds final results back into the ratings.
package bot

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/elo-better/internal/models"
	"github.com/yourusername/elo-better/internal/predict"
	"github.com/yourusername/elo-better/internal/rating"
	"github.com/yourusername/elo-better/internal/repository"
	"github.com/yourusername/elo-better/internal/staking"
)

// Config holds the per-sport engine parameters
type Config struct {
	Sport           models.Sport
	KFactor         float64
	InitialBankroll float64
	Staking         staking.Params
	Gate            staking.Gate
	TwoWayParams    predict.TwoWayParams
	ThreeWayParams  predict.ThreeWayParams
}

// Engine runs the analyze/bet/settle/update loop for one sport. Repositories
// are optional; without them the engine keeps an in-memory ledger, which is
// what the analyze-only CLI path uses.
type Engine struct {
	cfg      Config
	store    *rating.Store
	twoWay   *predict.TwoWayModel
	threeWay *predict.ThreeWayModel

	betRepo    repository.BetRepository
	ratingRepo repository.RatingRepository

	mu       sync.Mutex
	bankroll float64
	ledger   map[uuid.UUID]*models.Bet

	logger *logrus.Logger
}

// NewEngine creates a betting engine for one sport
func NewEngine(cfg Config, store *rating.Store, betRepo repository.BetRepository, ratingRepo repository.RatingRepository, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}

	return &Engine{
		cfg:        cfg,
		store:      store,
		twoWay:     predict.NewTwoWayModel(store, cfg.TwoWayParams),
		threeWay:   predict.NewThreeWayModel(store, cfg.ThreeWayParams),
		betRepo:    betRepo,
		ratingRepo: ratingRepo,
		bankroll:   cfg.InitialBankroll,
		ledger:     make(map[uuid.UUID]*models.Bet),
		logger:     logger,
	}
}

// Bankroll returns the current bankroll
func (e *Engine) Bankroll() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bankroll
}

// SetBankroll overrides the current bankroll (e.g. restored from storage)
func (e *Engine) SetBankroll(amount float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bankroll = amount
}

// Store exposes the underlying rating store
func (e *Engine) Store() *rating.Store {
	return e.store
}

// getBet fetches a bet from the repository or the in-memory ledger
func (e *Engine) getBet(ctx context.Context, id uuid.UUID) (*models.Bet, error) {
	if e.betRepo != nil {
		return e.betRepo.GetByID(ctx, id)
	}

	bet, ok := e.ledger[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return bet, nil
}

// saveBet persists a new bet
func (e *Engine) saveBet(ctx context.Context, bet *models.Bet) error {
	if e.betRepo != nil {
		if err := e.betRepo.Create(ctx, bet); err != nil {
			return err
		}
	}
	e.ledger[bet.ID] = bet
	return nil
}

// updateBet persists a settled bet
func (e *Engine) updateBet(ctx context.Context, bet *models.Bet) error {
	if e.betRepo != nil {
		if err := e.betRepo.Update(ctx, bet); err != nil {
			return err
		}
	}
	e.ledger[bet.ID] = bet
	return nil
}

// listBets returns every bet for this engine's sport
func (e *Engine) listBets(ctx context.Context) ([]*models.Bet, error) {
	if e.betRepo != nil {
		return e.betRepo.GetAll(ctx, e.cfg.Sport)
	}

	bets := make([]*models.Bet, 0, len(e.ledger))
	for _, bet := range e.ledger {
		bets = append(bets, bet)
	}
	return bets, nil
}
