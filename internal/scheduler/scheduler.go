package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/yourusername/elo-better/internal/metrics"
	"github.com/yourusername/elo-better/internal/service"
)

// Scheduler manages scheduled results sync jobs
type Scheduler struct {
	cron            *cron.Cron
	logger          *log.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(logger *log.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleResultsSync schedules a recurring sync of the previous day's final
// games. Ratings then reflect yesterday's results before any new analysis.
func (s *Scheduler) ScheduleResultsSync(cronExpression string, syncer *service.ResultsSyncer, sport string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()

		date := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
		s.logger.Printf("Starting scheduled results sync for %s (%s)", sport, date)

		stats, err := syncer.Sync(ctx, date)
		if err != nil {
			s.logger.Printf("Error during scheduled results sync: %v", err)
			return
		}

		for i := 0; i < stats.Applied; i++ {
			metrics.RecordResultSynced(sport)
		}
		metrics.RecordSyncDuration(stats.Duration.Seconds())

		s.logger.Printf("Scheduled results sync completed: %d fetched, %d applied, %d skipped",
			stats.Fetched, stats.Applied, stats.Skipped)
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.Printf("Scheduled results sync job with cron expression: %s", cronExpression)

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Printf("Scheduler started with %d jobs", len(s.jobIDs))

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.gracefulTimeout)
	defer cancel()

	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Printf("Scheduler stop timed out after %s", s.gracefulTimeout)
	}
	s.isRunning = false
	s.logger.Printf("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			nextTime := entry.Next
			if nextRun.IsZero() || nextTime.Before(nextRun) {
				nextRun = nextTime
			}
		}
	}

	return nextRun
}
