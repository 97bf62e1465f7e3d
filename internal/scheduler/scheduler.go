// Package scheduler runs periodic ranking rebuilds on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/trackday/internal/service"
)

// Rebuilder is the slice of the ranking service the scheduler drives
type Rebuilder interface {
	Rebuild(ctx context.Context) (service.RebuildSummary, error)
}

// Scheduler manages the periodic ranking rebuild job
type Scheduler struct {
	cron           *cron.Cron
	rebuilder      Rebuilder
	logger         *logrus.Logger
	mu             sync.RWMutex
	isRunning      bool
	jobIDs         []cron.EntryID
	rebuildTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(rebuilder Rebuilder, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:           cron.New(cron.WithLocation(time.UTC)),
		rebuilder:      rebuilder,
		logger:         logger,
		jobIDs:         make([]cron.EntryID, 0),
		rebuildTimeout: 10 * time.Minute,
	}
}

// ScheduleRebuild schedules the ranking rebuild job. The expression
// accepts standard cron syntax as well as @every descriptors.
func (s *Scheduler) ScheduleRebuild(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.rebuildTimeout)
		defer cancel()

		summary, err := s.rebuilder.Rebuild(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled ranking rebuild failed")
			return
		}

		s.logger.WithFields(logrus.Fields{
			"rankings":          summary.Rankings,
			"matches_processed": summary.MatchesProcessed,
			"duration_ms":       summary.Duration.Milliseconds(),
		}).Info("Scheduled ranking rebuild completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("schedule", cronExpression).Info("Scheduled ranking rebuild job")

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
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running rebuild to
// finish
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled rebuild
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
