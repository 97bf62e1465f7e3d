// Package config provides configuration management for the Trackday application.
package config

import (
	"fmt"

	"github.com/yourusername/trackday/internal/rating"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Rating      RatingConfig      `mapstructure:"rating" validate:"required"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard" validate:"required"`
	Live        LiveConfig        `mapstructure:"live"`
	Notify      NotifyConfig      `mapstructure:"notify"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// RatingConfig holds the tuning constants for the rating engine
type RatingConfig struct {
	InitialRating      float64 `mapstructure:"initial_rating" validate:"required,gt=0"`
	InitialDeviation   float64 `mapstructure:"initial_deviation" validate:"required,gt=0"`
	InitialVolatility  float64 `mapstructure:"initial_volatility" validate:"required,gt=0"`
	Tau                float64 `mapstructure:"tau" validate:"required,gt=0"`
	TrackStatsAlphaMax float64 `mapstructure:"track_stats_alpha_max" validate:"required,gt=0,lte=1"`
	UserTrackAlpha     float64 `mapstructure:"user_track_alpha" validate:"required,gt=0,lte=1"`
	LapRatingScale     float64 `mapstructure:"lap_rating_scale" validate:"required,gt=0"`
	TrackMaturityLaps  float64 `mapstructure:"track_maturity_laps" validate:"required,gt=0"`
	PriorWeight        float64 `mapstructure:"prior_weight" validate:"required,gt=0"`
	MatchWeight        float64 `mapstructure:"match_weight" validate:"gte=0,lte=1"`
}

// LeaderboardConfig represents leaderboard service configuration
type LeaderboardConfig struct {
	CacheTTLSeconds     int `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheCleanupSeconds int `mapstructure:"cache_cleanup_seconds" validate:"required,gt=0"`
	DefaultPageSize     int `mapstructure:"default_page_size" validate:"required,gt=0"`
}

// LiveConfig represents the websocket push configuration
type LiveConfig struct {
	Enabled              bool    `mapstructure:"enabled"`
	MessagesPerSecond    float64 `mapstructure:"messages_per_second" validate:"omitempty,gt=0"`
	MessageBurst         int     `mapstructure:"message_burst" validate:"omitempty,gt=0"`
	WriteTimeoutSeconds  int     `mapstructure:"write_timeout_seconds" validate:"omitempty,gt=0"`
	ClientBufferMessages int     `mapstructure:"client_buffer_messages" validate:"omitempty,gt=0"`
}

// NotifyConfig represents webhook notification configuration
type NotifyConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	WebhookURL     string `mapstructure:"webhook_url" validate:"omitempty,url"`
	AuthToken      string `mapstructure:"auth_token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
	RetryAttempts  int    `mapstructure:"retry_attempts" validate:"omitempty,gte=0"`
}

// SchedulerConfig represents the ranking rebuild scheduling configuration
type SchedulerConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	RebuildSchedule string `mapstructure:"rebuild_schedule" validate:"required"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ToRatingConfig converts the file-backed rating section into the
// engine's config struct
func (r RatingConfig) ToRatingConfig() rating.Config {
	return rating.Config{
		InitialRating:      r.InitialRating,
		InitialDeviation:   r.InitialDeviation,
		InitialVolatility:  r.InitialVolatility,
		Tau:                r.Tau,
		TrackStatsAlphaMax: r.TrackStatsAlphaMax,
		UserTrackAlpha:     r.UserTrackAlpha,
		LapRatingScale:     r.LapRatingScale,
		TrackMaturityLaps:  r.TrackMaturityLaps,
		PriorWeight:        r.PriorWeight,
		MatchWeight:        r.MatchWeight,
	}
}
