// Package logger provides leaderboard-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// LeaderboardLogger provides dedicated logging for leaderboard operations.
type LeaderboardLogger struct {
	*logrus.Entry
}

// NewLeaderboardLogger creates a new leaderboard logger.
func NewLeaderboardLogger(baseLogger *logrus.Logger) *LeaderboardLogger {
	return &LeaderboardLogger{
		Entry: baseLogger.WithField("component", "leaderboard"),
	}
}

// LogLeaderboardBuilt logs a freshly computed leaderboard.
func (ll *LeaderboardLogger) LogLeaderboardBuilt(trackID string, totalEntries, pageSize int, cacheHit bool, durationMs float64) {
	ll.WithFields(logrus.Fields{
		"track_id":          trackID,
		"total_entries":     totalEntries,
		"page_size":         pageSize,
		"cache_hit":         cacheHit,
		"build_duration_ms": durationMs,
	}).Info("Leaderboard built")
}

// LogCacheInvalidation logs a cache invalidation for a track.
func (ll *LeaderboardLogger) LogCacheInvalidation(trackID, reason string) {
	ll.WithFields(logrus.Fields{
		"track_id":   trackID,
		"event_type": "cache_invalidation",
		"reason":     reason,
	}).Debug("Leaderboard cache invalidated")
}
