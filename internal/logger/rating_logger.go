// Package logger provides rating-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// RatingLogger provides dedicated logging for rating engine operations.
type RatingLogger struct {
	*logrus.Entry
}

// NewRatingLogger creates a new rating logger.
func NewRatingLogger(baseLogger *logrus.Logger) *RatingLogger {
	return &RatingLogger{
		Entry: baseLogger.WithField("component", "rating"),
	}
}

// LogRebuildStart logs the start of a full ranking rebuild.
func (rl *RatingLogger) LogRebuildStart(users, matches, timeEntries int) {
	rl.WithFields(logrus.Fields{
		"event_type":   "rebuild_start",
		"users":        users,
		"matches":      matches,
		"time_entries": timeEntries,
	}).Info("Ranking rebuild started")
}

// LogRebuildComplete logs a completed ranking rebuild.
func (rl *RatingLogger) LogRebuildComplete(rankings, matchesProcessed, matchesSkipped int, durationMs float64) {
	rl.WithFields(logrus.Fields{
		"event_type":         "rebuild_complete",
		"rankings":           rankings,
		"matches_processed":  matchesProcessed,
		"matches_skipped":    matchesSkipped,
		"rebuild_duration_ms": durationMs,
	}).Info("Ranking rebuild completed")
}

// LogRebuildFailure logs a failed ranking rebuild.
func (rl *RatingLogger) LogRebuildFailure(stage string, err error) {
	rl.WithFields(logrus.Fields{
		"event_type": "rebuild_failure",
		"stage":      stage,
		"error":      err.Error(),
	}).Error("Ranking rebuild failed")
}

// LogPrediction logs a head-to-head prediction request.
func (rl *RatingLogger) LogPrediction(user1, user2 string, probability float64) {
	rl.WithFields(logrus.Fields{
		"user1":       user1,
		"user2":       user2,
		"probability": probability,
	}).Debug("Match outcome predicted")
}
