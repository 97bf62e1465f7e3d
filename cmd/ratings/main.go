// Package main provides the entry point for the ratings daemon.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/trackday/internal/config"
	"github.com/yourusername/trackday/internal/database"
	"github.com/yourusername/trackday/internal/health"
	"github.com/yourusername/trackday/internal/live"
	"github.com/yourusername/trackday/internal/logger"
	"github.com/yourusername/trackday/internal/metrics"
	"github.com/yourusername/trackday/internal/notify"
	"github.com/yourusername/trackday/internal/repository"
	"github.com/yourusername/trackday/internal/scheduler"
	"github.com/yourusername/trackday/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.Environment, cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("Trackday ratings daemon starting")

	// Initialize metrics
	metrics.InitRegistry()

	// Initialize database connection
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	appLog.Info("Database connection established")

	// Initialize repositories and services
	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create repositories")
	}

	rankingSvc := service.NewRankingService(repos, cfg.Rating.ToRatingConfig(), appLog)
	leaderboardSvc := service.NewLeaderboardService(repos, cfg.Leaderboard, appLog)

	// Wire the live push hub
	var hub *live.Hub
	if cfg.Live.Enabled {
		hub = live.NewHub(cfg.Live, appLog)
		rankingSvc.SetBroadcaster(hub)
		appLog.Info("Live ranking push enabled")
	}

	// Wire the rebuild webhook
	if cfg.Notify.Enabled {
		notifier := notify.NewWebhookNotifier(cfg.Notify, appLog)
		defer notifier.Close()
		rankingSvc.SetNotifier(notifier)
		appLog.WithField("url", cfg.Notify.WebhookURL).Info("Rebuild webhook enabled")
	}

	// Start the health check server
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Logger:      appLog,
		DB:          db,
		Rankings:    rankingSvc,
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	// Serve metrics and the live websocket on the ops port
	var opsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		mux.HandleFunc("/api/rankings", handleRankings(rankingSvc))
		mux.HandleFunc("/api/leaderboard/", handleLeaderboard(leaderboardSvc, cfg.Leaderboard.DefaultPageSize))
		if hub != nil {
			mux.Handle("/ws/rankings", hub)
		}

		opsServer = &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}
		go func() {
			appLog.WithField("port", cfg.Metrics.Port).Info("Ops server starting")
			if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Ops server error")
			}
		}()
	}

	// Run the initial rebuild so the snapshot is warm before traffic
	if _, err := rankingSvc.Rebuild(ctx); err != nil {
		appLog.WithError(err).Error("Initial ranking rebuild failed")
	}

	// Schedule periodic rebuilds
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.NewScheduler(rankingSvc, appLog)
		if err := sched.ScheduleRebuild(cfg.Scheduler.RebuildSchedule); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule ranking rebuild")
		}
		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
		appLog.WithField("schedule", cfg.Scheduler.RebuildSchedule).Info("Rebuild scheduler started")
	}

	healthServer.SetReady(true)
	appLog.Info("Ratings daemon is running")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	// Graceful shutdown
	healthServer.SetReady(false)
	cancel()

	if sched != nil {
		if err := sched.Stop(); err != nil {
			appLog.WithError(err).Error("Error stopping scheduler")
		}
	}
	if hub != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		hub.Shutdown(shutdownCtx)
		shutdownCancel()
	}
	if opsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := opsServer.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Error stopping ops server")
		}
		shutdownCancel()
	}

	appLog.Info("Ratings daemon shut down successfully")
}
