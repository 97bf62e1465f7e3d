package cli

import (
	"context"
	"fmt"

	"github.com/yourusername/trackday/internal/config"
	"github.com/yourusername/trackday/internal/database"
	"github.com/yourusername/trackday/internal/logger"
	"github.com/yourusername/trackday/internal/repository"
	"github.com/yourusername/trackday/internal/service"
)

// app bundles everything a command needs to talk to the engine
type app struct {
	cfg         *config.Config
	db          *database.DB
	rankings    *service.RankingService
	leaderboard *service.LeaderboardService
}

// newApp loads configuration and connects to the database
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadWithDefaults(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Commands print their own results; the service loggers stay quiet
	// unless debugging is asked for.
	log := logger.NewLogger(cfg.App.Environment, cfg.App.LogLevel)

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &app{
		cfg:         cfg,
		db:          db,
		rankings:    service.NewRankingService(repos, cfg.Rating.ToRatingConfig(), log),
		leaderboard: service.NewLeaderboardService(repos, cfg.Leaderboard, log),
	}, nil
}

func (a *app) Close() {
	a.db.Close()
}
