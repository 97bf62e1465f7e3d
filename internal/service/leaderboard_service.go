// Package service wires repositories, calculators and caches into the
// application-facing operations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/trackday/internal/config"
	"github.com/yourusername/trackday/internal/leaderboard"
	"github.com/yourusername/trackday/internal/logger"
	"github.com/yourusername/trackday/internal/metrics"
	"github.com/yourusername/trackday/internal/models"
	"github.com/yourusername/trackday/internal/repository"
)

// LeaderboardService computes per-track leaderboards from persisted lap
// times. Computed pages are cached with a short TTL and invalidated
// whenever a lap is submitted or removed for the track.
type LeaderboardService struct {
	tracks      repository.TrackRepository
	timeEntries repository.TimeEntryRepository
	users       repository.UserRepository
	cache       *cache.Cache
	logger      *logrus.Logger
	lbLogger    *logger.LeaderboardLogger
}

// NewLeaderboardService creates a leaderboard service with its page cache
func NewLeaderboardService(repos *repository.Repositories, cfg config.LeaderboardConfig, log *logrus.Logger) *LeaderboardService {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cleanup := time.Duration(cfg.CacheCleanupSeconds) * time.Second

	return &LeaderboardService{
		tracks:      repos.Track,
		timeEntries: repos.TimeEntry,
		users:       repos.User,
		cache:       cache.New(ttl, cleanup),
		logger:      log,
		lbLogger:    logger.NewLeaderboardLogger(log),
	}
}

func leaderboardCacheKey(trackID uuid.UUID, offset, limit int) string {
	return fmt.Sprintf("%s:%d:%d", trackID, offset, limit)
}

// GetLeaderboard returns one page of the leaderboard for a track.
// Pages are cached; the underlying gaps are always computed from the
// full entry set, so a cached page never disagrees with a fresh one.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, trackID uuid.UUID, offset, limit int) (*models.Leaderboard, error) {
	key := leaderboardCacheKey(trackID, offset, limit)
	if cached, found := s.cache.Get(key); found {
		if board, ok := cached.(*models.Leaderboard); ok {
			metrics.RecordLeaderboardCacheHit()
			s.lbLogger.LogLeaderboardBuilt(trackID.String(), board.TotalEntries, len(board.Entries), true, 0)
			return board, nil
		}
	}

	start := time.Now()

	track, err := s.tracks.GetByID(ctx, trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to load track: %w", err)
	}

	entries, err := s.timeEntries.GetByTrackID(ctx, trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}

	users, err := s.users.GetAllInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	board, err := leaderboard.Build(track, entries, users, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}

	duration := time.Since(start)
	s.cache.SetDefault(key, board)
	metrics.RecordLeaderboardBuilt(duration.Seconds())
	s.lbLogger.LogLeaderboardBuilt(trackID.String(), board.TotalEntries, len(board.Entries), false, float64(duration.Milliseconds()))

	return board, nil
}

// SubmitTimeEntry persists a new lap and invalidates the track's cached
// leaderboard pages
func (s *LeaderboardService) SubmitTimeEntry(ctx context.Context, entry *models.TimeEntry) error {
	if entry == nil {
		return models.ErrInvalidInput
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	if _, err := s.tracks.GetByID(ctx, entry.TrackID); err != nil {
		return fmt.Errorf("failed to verify track: %w", err)
	}

	if err := s.timeEntries.Create(ctx, entry); err != nil {
		return err
	}

	s.InvalidateTrack(entry.TrackID, "new_time_entry")
	return nil
}

// RemoveTimeEntry soft-deletes a lap and invalidates the track's cached
// leaderboard pages
func (s *LeaderboardService) RemoveTimeEntry(ctx context.Context, id uuid.UUID) error {
	entry, err := s.timeEntries.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.timeEntries.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.InvalidateTrack(entry.TrackID, "time_entry_removed")
	return nil
}

// InvalidateTrack drops every cached page for a track
func (s *LeaderboardService) InvalidateTrack(trackID uuid.UUID, reason string) {
	prefix := trackID.String() + ":"
	for key := range s.cache.Items() {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			s.cache.Delete(key)
		}
	}
	s.lbLogger.LogCacheInvalidation(trackID.String(), reason)
}
