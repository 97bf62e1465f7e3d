// Package metrics provides centralized Prometheus metrics registry for the rating engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	MatchesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trackday",
		Name:      "matches_processed_total",
		Help:      "Total number of completed matches fed into the rating engine",
	})
	MatchesSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trackday",
		Name:      "matches_skipped_total",
		Help:      "Total number of matches skipped during rating computation",
	})
	TimeEntriesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trackday",
		Name:      "time_entries_processed_total",
		Help:      "Total number of timed laps fed into the track rating calculator",
	})
	RankingRebuildsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trackday",
		Name:      "ranking_rebuilds_total",
		Help:      "Total number of full ranking rebuilds",
	})
	RankingRebuildFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trackday",
		Name:      "ranking_rebuild_failures_total",
		Help:      "Total number of failed ranking rebuilds",
	})
	LeaderboardsBuiltTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trackday",
		Name:      "leaderboards_built_total",
		Help:      "Total number of leaderboards computed",
	})
	LeaderboardCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trackday",
		Name:      "leaderboard_cache_hits_total",
		Help:      "Total number of leaderboard requests served from cache",
	})
)

// Gauge metrics
var (
	TrackedPlayers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "trackday",
		Name:      "tracked_players",
		Help:      "Number of players in the current ranking snapshot",
	})
	TrackedTracks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "trackday",
		Name:      "tracked_tracks",
		Help:      "Number of tracks with lap statistics in the current snapshot",
	})
	LastRebuildTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "trackday",
		Name:      "last_rebuild_timestamp_seconds",
		Help:      "Unix timestamp of the last successful ranking rebuild",
	})
	LiveClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "trackday",
		Name:      "live_clients",
		Help:      "Number of connected websocket clients",
	})
)

// Histogram metrics
var (
	RankingRebuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "trackday",
		Name:      "ranking_rebuild_duration_seconds",
		Help:      "Duration of full ranking rebuilds in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	LeaderboardBuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "trackday",
		Name:      "leaderboard_build_duration_seconds",
		Help:      "Duration of leaderboard computation in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(MatchesProcessedTotal)
		registry.MustRegister(MatchesSkippedTotal)
		registry.MustRegister(TimeEntriesProcessedTotal)
		registry.MustRegister(RankingRebuildsTotal)
		registry.MustRegister(RankingRebuildFailuresTotal)
		registry.MustRegister(LeaderboardsBuiltTotal)
		registry.MustRegister(LeaderboardCacheHitsTotal)

		// Register gauge metrics
		registry.MustRegister(TrackedPlayers)
		registry.MustRegister(TrackedTracks)
		registry.MustRegister(LastRebuildTimestamp)
		registry.MustRegister(LiveClients)

		// Register histogram metrics
		registry.MustRegister(RankingRebuildDuration)
		registry.MustRegister(LeaderboardBuildDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordMatchesProcessed records a batch of matches fed into the rating engine.
func RecordMatchesProcessed(count int) {
	MatchesProcessedTotal.Add(float64(count))
}

// RecordMatchesSkipped records a batch of matches skipped during rating computation.
func RecordMatchesSkipped(count int) {
	MatchesSkippedTotal.Add(float64(count))
}

// RecordTimeEntryProcessed records a timed lap fed into the calculator.
func RecordTimeEntryProcessed() {
	TimeEntriesProcessedTotal.Inc()
}

// RecordRankingRebuild records a completed ranking rebuild.
func RecordRankingRebuild(durationSeconds float64) {
	RankingRebuildsTotal.Inc()
	RankingRebuildDuration.Observe(durationSeconds)
}

// RecordRankingRebuildFailure records a failed ranking rebuild.
func RecordRankingRebuildFailure() {
	RankingRebuildFailuresTotal.Inc()
}

// RecordLeaderboardBuilt records a computed leaderboard.
func RecordLeaderboardBuilt(durationSeconds float64) {
	LeaderboardsBuiltTotal.Inc()
	LeaderboardBuildDuration.Observe(durationSeconds)
}

// RecordLeaderboardCacheHit records a leaderboard request served from cache.
func RecordLeaderboardCacheHit() {
	LeaderboardCacheHitsTotal.Inc()
}

// UpdateTrackedPlayers updates the tracked players gauge.
func UpdateTrackedPlayers(count float64) {
	TrackedPlayers.Set(count)
}

// UpdateTrackedTracks updates the tracked tracks gauge.
func UpdateTrackedTracks(count float64) {
	TrackedTracks.Set(count)
}

// UpdateLastRebuildTimestamp updates the last rebuild timestamp gauge.
func UpdateLastRebuildTimestamp(unixSeconds float64) {
	LastRebuildTimestamp.Set(unixSeconds)
}

// UpdateLiveClients updates the connected websocket clients gauge.
func UpdateLiveClients(count float64) {
	LiveClients.Set(count)
}
