package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/trackday/internal/logger"
	"github.com/yourusername/trackday/internal/metrics"
	"github.com/yourusername/trackday/internal/models"
	"github.com/yourusername/trackday/internal/rating"
	"github.com/yourusername/trackday/internal/repository"
)

// RebuildSummary describes one completed ranking rebuild
type RebuildSummary struct {
	Rankings         int           `json:"rankings"`
	MatchesProcessed int           `json:"matches_processed"`
	MatchesSkipped   int           `json:"matches_skipped"`
	TimeEntries      int           `json:"time_entries"`
	Duration         time.Duration `json:"duration"`
	CompletedAt      time.Time     `json:"completed_at"`
}

// RebuildNotifier is notified after every successful rebuild
type RebuildNotifier interface {
	NotifyRebuild(ctx context.Context, summary RebuildSummary) error
}

// RankingBroadcaster pushes a fresh ranking snapshot to live clients
type RankingBroadcaster interface {
	BroadcastRankings(rankings []models.Ranking)
}

// RankingService owns the full ranking computation: it replays the
// persisted history through fresh calculators and publishes an
// immutable snapshot. Reads never block a rebuild for long; the swap
// under the write lock is a pointer assignment.
type RankingService struct {
	users       repository.UserRepository
	matches     repository.MatchRepository
	timeEntries repository.TimeEntryRepository

	cfg         rating.Config
	logger      *logrus.Logger
	ratingLog   *logger.RatingLogger
	notifier    RebuildNotifier
	broadcaster RankingBroadcaster

	mu          sync.RWMutex
	rankings    []models.Ranking
	matchCalc   *rating.MatchCalculator
	trackCalc   *rating.TrackCalculator
	lastRebuild time.Time
}

// NewRankingService creates a ranking service. The snapshot is empty
// until the first Rebuild.
func NewRankingService(repos *repository.Repositories, cfg rating.Config, log *logrus.Logger) *RankingService {
	return &RankingService{
		users:       repos.User,
		matches:     repos.Match,
		timeEntries: repos.TimeEntry,
		cfg:         cfg,
		logger:      log,
		ratingLog:   logger.NewRatingLogger(log),
	}
}

// SetNotifier registers a webhook notifier for rebuild completions
func (s *RankingService) SetNotifier(n RebuildNotifier) {
	s.notifier = n
}

// SetBroadcaster registers a live push target for ranking snapshots
func (s *RankingService) SetBroadcaster(b RankingBroadcaster) {
	s.broadcaster = b
}

// Rebuild recomputes all ratings from scratch. Fresh calculators replay
// the full history so a rebuild is deterministic regardless of what the
// previous snapshot contained. Matches are replayed in chronological
// order, one rating period per session.
func (s *RankingService) Rebuild(ctx context.Context) (RebuildSummary, error) {
	start := time.Now()

	users, err := s.users.GetAllInfo(ctx)
	if err != nil {
		s.ratingLog.LogRebuildFailure("load_users", err)
		metrics.RecordRankingRebuildFailure()
		return RebuildSummary{}, fmt.Errorf("failed to load users: %w", err)
	}

	matchHistory, err := s.matches.GetCompletedChronological(ctx)
	if err != nil {
		s.ratingLog.LogRebuildFailure("load_matches", err)
		metrics.RecordRankingRebuildFailure()
		return RebuildSummary{}, fmt.Errorf("failed to load matches: %w", err)
	}

	entries, err := s.timeEntries.GetAllChronological(ctx)
	if err != nil {
		s.ratingLog.LogRebuildFailure("load_time_entries", err)
		metrics.RecordRankingRebuildFailure()
		return RebuildSummary{}, fmt.Errorf("failed to load time entries: %w", err)
	}

	s.ratingLog.LogRebuildStart(len(users), len(matchHistory), len(entries))

	roster := make([]uuid.UUID, len(users))
	for i, u := range users {
		roster[i] = u.ID
	}

	matchCalc := rating.NewMatchCalculator(s.cfg, roster, s.logger)
	trackCalc := rating.NewTrackCalculator(s.cfg, s.logger)

	var processed, skipped int
	for _, batch := range batchMatchesBySession(matchHistory) {
		p, sk := matchCalc.ProcessMatches(batch)
		processed += p
		skipped += sk
	}

	trackIDs := make(map[uuid.UUID]struct{})
	for _, entry := range entries {
		trackCalc.ProcessTimeEntry(entry)
		trackIDs[entry.TrackID] = struct{}{}
		metrics.RecordTimeEntryProcessed()
	}

	rankings := rating.BuildRankings(users, matchCalc, trackCalc, s.cfg)
	completedAt := time.Now()

	s.mu.Lock()
	s.rankings = rankings
	s.matchCalc = matchCalc
	s.trackCalc = trackCalc
	s.lastRebuild = completedAt
	s.mu.Unlock()

	duration := completedAt.Sub(start)
	metrics.RecordMatchesProcessed(processed)
	metrics.RecordMatchesSkipped(skipped)
	metrics.RecordRankingRebuild(duration.Seconds())
	metrics.UpdateTrackedPlayers(float64(len(rankings)))
	metrics.UpdateTrackedTracks(float64(len(trackIDs)))
	metrics.UpdateLastRebuildTimestamp(float64(completedAt.Unix()))

	s.ratingLog.LogRebuildComplete(len(rankings), processed, skipped, float64(duration.Milliseconds()))

	summary := RebuildSummary{
		Rankings:         len(rankings),
		MatchesProcessed: processed,
		MatchesSkipped:   skipped,
		TimeEntries:      len(entries),
		Duration:         duration,
		CompletedAt:      completedAt,
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastRankings(rankings)
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyRebuild(ctx, summary); err != nil {
			s.logger.WithError(err).Warn("Failed to deliver rebuild notification")
		}
	}

	return summary, nil
}

// batchMatchesBySession splits a chronological match list into rating
// periods. Consecutive matches of the same session form one period;
// matches outside any session are rated individually.
func batchMatchesBySession(matchHistory []*models.Match) [][]*models.Match {
	var batches [][]*models.Match
	var current []*models.Match
	var currentSession *uuid.UUID

	flush := func() {
		if len(current) > 0 {
			batches = append(batches, current)
			current = nil
		}
	}

	for _, match := range matchHistory {
		sameSession := match.SessionID != nil && currentSession != nil && *match.SessionID == *currentSession
		if !sameSession {
			flush()
		}
		current = append(current, match)
		currentSession = match.SessionID
		if match.SessionID == nil {
			flush()
			currentSession = nil
		}
	}
	flush()

	return batches
}

// GetRankings returns a copy of the current ranking snapshot
func (s *RankingService) GetRankings() []models.Ranking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Ranking, len(s.rankings))
	copy(out, s.rankings)
	return out
}

// GetRanking returns one user's row from the current snapshot
func (s *RankingService) GetRanking(userID uuid.UUID) (models.Ranking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rankings {
		if r.User.ID == userID {
			return r, true
		}
	}
	return models.Ranking{}, false
}

// LastRebuild returns when the snapshot was last recomputed
func (s *RankingService) LastRebuild() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRebuild
}

// PredictMatch returns the probability that user1 beats user2 according
// to the current snapshot. False before the first rebuild or for
// unknown users.
func (s *RankingService) PredictMatch(user1, user2 uuid.UUID) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.matchCalc == nil {
		return 0, false
	}
	p, ok := s.matchCalc.Predict(user1, user2)
	if ok {
		s.ratingLog.LogPrediction(user1.String(), user2.String(), p)
	}
	return p, ok
}

// MatchOdds returns decimal odds for a head-to-head matchup according
// to the current snapshot
func (s *RankingService) MatchOdds(user1, user2 uuid.UUID) (rating.MatchOdds, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.matchCalc == nil {
		return rating.MatchOdds{}, false
	}
	return s.matchCalc.Odds(user1, user2)
}

// TrackStats returns the lap statistics for a track from the current
// snapshot
func (s *RankingService) TrackStats(trackID uuid.UUID) (rating.TrackStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.trackCalc == nil {
		return rating.TrackStats{}, false
	}
	return s.trackCalc.GetTrackStats(trackID)
}
