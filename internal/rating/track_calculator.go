package rating

import (
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/trackday/internal/models"
)

// TrackStats holds the evolving lap-time statistics for one track
type TrackStats struct {
	Count   int
	Average float64
}

// TrackCalculator estimates per-user skill from raw lap times. Each
// track keeps an exponential moving average of all lap times, which
// acts as an implicit difficulty estimate; a lap's performance score is
// measured against it, so scores are comparable across tracks.
//
// The calculator is order-sensitive: entries must be fed oldest first.
// One instance per rating computation job.
type TrackCalculator struct {
	cfg              Config
	userTrackRatings map[uuid.UUID]map[uuid.UUID]float64
	userTrackLaps    map[uuid.UUID]map[uuid.UUID]int
	trackStats       map[uuid.UUID]*TrackStats
	logger           *logrus.Logger
}

// NewTrackCalculator creates an empty track rating calculator
func NewTrackCalculator(cfg Config, logger *logrus.Logger) *TrackCalculator {
	return &TrackCalculator{
		cfg:              cfg,
		userTrackRatings: make(map[uuid.UUID]map[uuid.UUID]float64),
		userTrackLaps:    make(map[uuid.UUID]map[uuid.UUID]int),
		trackStats:       make(map[uuid.UUID]*TrackStats),
		logger:           logger,
	}
}

// ProcessTimeEntry feeds one timed lap into the calculator. DNF entries
// carry no performance signal and are ignored, as are non-positive
// durations, which would poison the track average.
func (c *TrackCalculator) ProcessTimeEntry(entry *models.TimeEntry) {
	if entry.IsDNF() {
		return
	}
	lap := float64(*entry.Duration)
	if lap <= 0 {
		c.logger.WithFields(logrus.Fields{
			"entry_id": entry.ID,
			"duration": *entry.Duration,
		}).Warn("Skipping time entry with non-positive duration")
		return
	}

	average := c.updateTrackAverage(entry.TrackID, lap)

	score := c.cfg.InitialRating + c.cfg.LapRatingScale*math.Log10(average/lap)
	c.ratchetUserTrackRating(entry.UserID, entry.TrackID, score)

	laps, ok := c.userTrackLaps[entry.UserID]
	if !ok {
		laps = make(map[uuid.UUID]int)
		c.userTrackLaps[entry.UserID] = laps
	}
	laps[entry.TrackID]++
}

// updateTrackAverage folds a lap into the track's moving average. The
// EMA weight is min(alphaMax, 2/(n+1)), which behaves like a cumulative
// average for the first laps and converges to a fixed weight once the
// track has history. The first lap initializes the average directly.
func (c *TrackCalculator) updateTrackAverage(trackID uuid.UUID, lap float64) float64 {
	stats, ok := c.trackStats[trackID]
	if !ok {
		stats = &TrackStats{Count: 1, Average: lap}
		c.trackStats[trackID] = stats
		return stats.Average
	}

	alpha := 2.0 / float64(stats.Count+1)
	if alpha > c.cfg.TrackStatsAlphaMax {
		alpha = c.cfg.TrackStatsAlphaMax
	}
	stats.Average = stats.Average*(1.0-alpha) + lap*alpha
	stats.Count++
	return stats.Average
}

// ratchetUserTrackRating applies the monotonic update rule: a score
// above the current rating blends in, anything else leaves the rating
// untouched. A user's track rating reflects their best sustained pace,
// never a single bad lap.
func (c *TrackCalculator) ratchetUserTrackRating(userID, trackID uuid.UUID, score float64) {
	ratings, ok := c.userTrackRatings[userID]
	if !ok {
		ratings = make(map[uuid.UUID]float64)
		c.userTrackRatings[userID] = ratings
	}

	current, ok := ratings[trackID]
	if !ok {
		current = c.cfg.InitialRating
		ratings[trackID] = current
	}

	if score > current {
		k := c.cfg.UserTrackAlpha
		ratings[trackID] = current*(1.0-k) + score*k
	}
}

// GetRating aggregates a user's per-track ratings into one scalar. Each
// track is weighted by 1-exp(-laps/maturity), so a track the user has
// barely driven contributes almost nothing, and a Bayesian prior term
// regresses low-data users toward the initial rating. A user with zero
// tracked laps gets exactly the initial rating.
func (c *TrackCalculator) GetRating(userID uuid.UUID) float64 {
	numerator := c.cfg.InitialRating * c.cfg.PriorWeight
	denominator := c.cfg.PriorWeight

	for trackID, trackRating := range c.userTrackRatings[userID] {
		laps := float64(c.userTrackLaps[userID][trackID])
		weight := 1.0 - math.Exp(-laps/c.cfg.TrackMaturityLaps)
		numerator += trackRating * weight
		denominator += weight
	}

	return numerator / denominator
}

// UserTrackRating returns the user's ratchet rating on one track
func (c *TrackCalculator) UserTrackRating(userID, trackID uuid.UUID) (float64, bool) {
	r, ok := c.userTrackRatings[userID][trackID]
	return r, ok
}

// GetTrackStats returns the lap count and moving average for a track
func (c *TrackCalculator) GetTrackStats(trackID uuid.UUID) (TrackStats, bool) {
	if stats, ok := c.trackStats[trackID]; ok {
		return *stats, true
	}
	return TrackStats{}, false
}

// Reset clears all accumulated state
func (c *TrackCalculator) Reset() {
	c.userTrackRatings = make(map[uuid.UUID]map[uuid.UUID]float64)
	c.userTrackLaps = make(map[uuid.UUID]map[uuid.UUID]int)
	c.trackStats = make(map[uuid.UUID]*TrackStats)
}
