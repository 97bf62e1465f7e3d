// Package rating implements the skill-rating engine: a Glicko-2 match
// rating calculator, a track-normalized lap performance calculator, and
// the aggregator that blends them into an overall player ranking.
package rating

// Config holds the tuning constants injected into the rating
// calculators. Values are owned by the caller (see config.RatingConfig);
// none of them are hardcoded inside the calculators.
type Config struct {
	InitialRating     float64
	InitialDeviation  float64
	InitialVolatility float64
	Tau               float64

	TrackStatsAlphaMax float64
	UserTrackAlpha     float64
	LapRatingScale     float64
	TrackMaturityLaps  float64
	PriorWeight        float64

	MatchWeight float64
}

// DefaultConfig returns the standard tuning used when no configuration
// file overrides it.
func DefaultConfig() Config {
	return Config{
		InitialRating:      1500,
		InitialDeviation:   350,
		InitialVolatility:  0.06,
		Tau:                0.5,
		TrackStatsAlphaMax: 0.2,
		UserTrackAlpha:     0.2,
		LapRatingScale:     1000,
		TrackMaturityLaps:  20,
		PriorWeight:        3,
		MatchWeight:        0.5,
	}
}
