package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/yourusername/elo-better/internal/datasource"
	"github.com/yourusername/elo-better/internal/models"
	"github.com/yourusername/elo-better/internal/rating"
	"github.com/yourusername/elo-better/internal/repository"
)

// SyncStats summarizes a results sync run
type SyncStats struct {
	Fetched  int
	Applied  int
	Skipped  int
	Duration time.Duration
}

// ResultsSyncer pulls completed games from a provider, applies Elo updates
// and persists both the results and the moved ratings. Repositories may be
// nil for an in-memory run (e.g. the analyze CLI without a database).
type ResultsSyncer struct {
	source     datasource.ResultsSource
	store      *rating.Store
	ratingRepo repository.RatingRepository
	resultRepo repository.ResultRepository
	sport      models.Sport
	kFactor    float64
	logger     *log.Logger
}

// NewResultsSyncer creates a new results syncer
func NewResultsSyncer(
	source datasource.ResultsSource,
	store *rating.Store,
	ratingRepo repository.RatingRepository,
	resultRepo repository.ResultRepository,
	sport models.Sport,
	kFactor float64,
	logger *log.Logger,
) *ResultsSyncer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &ResultsSyncer{
		source:     source,
		store:      store,
		ratingRepo: ratingRepo,
		resultRepo: resultRepo,
		sport:      sport,
		kFactor:    kFactor,
		logger:     logger,
	}
}

// Sync fetches final games for a date and applies each one exactly once.
// Games already recorded in the results table are skipped so re-running a
// sync never double-counts an Elo update.
func (s *ResultsSyncer) Sync(ctx context.Context, date string) (SyncStats, error) {
	start := time.Now()

	results, err := s.source.FetchResults(ctx, date)
	if err != nil {
		return SyncStats{}, fmt.Errorf("failed to fetch results from %s: %w", s.source.Name(), err)
	}

	stats := SyncStats{Fetched: len(results)}
	for i := range results {
		result := &results[i]

		if s.resultRepo != nil {
			exists, err := s.resultRepo.Exists(ctx, s.sport, result)
			if err != nil {
				return stats, fmt.Errorf("failed to check existing result: %w", err)
			}
			if exists {
				stats.Skipped++
				continue
			}
		}

		if err := s.Apply(ctx, result); err != nil {
			return stats, err
		}
		stats.Applied++
	}

	stats.Duration = time.Since(start)
	s.logger.Printf("Results sync for %s (%s): %d fetched, %d applied, %d skipped in %s",
		date, s.source.Name(), stats.Fetched, stats.Applied, stats.Skipped, stats.Duration)

	return stats, nil
}

// Apply updates ratings for a single final game and persists everything
func (s *ResultsSyncer) Apply(ctx context.Context, result *models.GameResult) error {
	home := rating.CanonicalTeamName(result.HomeTeam)
	away := rating.CanonicalTeamName(result.AwayTeam)

	ratingHome := s.store.Rating(home)
	ratingAway := s.store.Rating(away)

	var newHome, newAway float64
	if s.sport == models.SportSoccer {
		newHome, newAway = rating.UpdateThreeWay(ratingHome, ratingAway, result.HomeScore, result.AwayScore, s.kFactor)
	} else {
		// Ratings move on the raw head-to-head outcome; situational bonuses
		// only enter at prediction time.
		newHome, newAway = rating.UpdateTwoWay(ratingHome, ratingAway, result.HomeWon(), s.kFactor, 0)
	}

	s.store.SetRating(home, newHome)
	s.store.SetRating(away, newAway)

	if s.resultRepo != nil {
		stored := *result
		stored.HomeTeam = home
		stored.AwayTeam = away
		if err := s.resultRepo.Create(ctx, s.sport, &stored); err != nil {
			return fmt.Errorf("failed to store result: %w", err)
		}
	}

	if s.ratingRepo != nil {
		for team, elo := range map[string]float64{home: newHome, away: newAway} {
			tr := &models.TeamRating{TeamName: team, EloRating: elo, LastUpdated: time.Now()}
			if err := s.ratingRepo.Upsert(ctx, s.sport, tr); err != nil {
				return fmt.Errorf("failed to persist rating for %s: %w", team, err)
			}
		}
	}

	s.logger.Printf("%s %d - %d %s: %s %.1f -> %.1f, %s %.1f -> %.1f",
		home, result.HomeScore, result.AwayScore, away,
		home, ratingHome, newHome, away, ratingAway, newAway)

	return nil
}

// LoadRatings hydrates the in-memory store from the ratings table
func (s *ResultsSyncer) LoadRatings(ctx context.Context) (int, error) {
	if s.ratingRepo == nil {
		return 0, nil
	}

	rows, err := s.ratingRepo.GetAll(ctx, s.sport)
	if err != nil {
		return 0, fmt.Errorf("failed to load ratings: %w", err)
	}

	saved := make(map[string]float64, len(rows))
	for _, row := range rows {
		saved[row.TeamName] = row.EloRating
	}
	s.store.Load(saved)

	return len(rows), nil
}
