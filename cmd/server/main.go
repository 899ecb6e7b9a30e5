package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/discline/pdga-fantasy-mcp-server/internal/config"
	"github.com/discline/pdga-fantasy-mcp-server/internal/mcp"
	"github.com/discline/pdga-fantasy-mcp-server/internal/pdga"
	"github.com/discline/pdga-fantasy-mcp-server/internal/schedule"
	"github.com/discline/pdga-fantasy-mcp-server/internal/store"
	"github.com/discline/pdga-fantasy-mcp-server/internal/updater"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Stdout carries the MCP protocol; keep logs on stderr.
	logger.SetOutput(os.Stderr)

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, reading environment variables directly")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load league config")
	}

	sched, err := schedule.LoadFile(cfg.SchedulePath, time.Now(), logger)
	if err != nil {
		logger.WithError(err).WithField("path", cfg.SchedulePath).Fatal("Failed to load tournament schedule")
	}

	st, err := newStore(context.Background(), cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize document store")
	}

	provider := pdga.NewHTTPClient(cfg.BaseURL, logger)

	u := updater.New(sched, provider, st, logger)
	u.Division = cfg.Division
	u.Window = cfg.Window()
	u.MinDelay = cfg.RequestDelay()

	mcpServer := mcp.NewLeagueMCPServer(sched, st, u, logger)
	if mcpServer == nil {
		logger.Fatal("Failed to create MCP server")
	}

	if cfg.AutoUpdate.Enabled {
		startAutoUpdate(u, cfg.UpdateInterval(), logger)
	}

	logger.Info("Starting PDGA Fantasy League MCP Server...")

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
		os.Exit(1)
	}
}

// newStore selects the document backend from config.
func newStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "s3":
		return store.NewS3Store(ctx, store.S3Config{
			Bucket:   cfg.Storage.Bucket,
			Prefix:   cfg.Storage.Prefix,
			Region:   cfg.Storage.Region,
			Endpoint: cfg.Storage.Endpoint,
		}, logger)
	case "", "file":
		return store.NewFileStore(cfg.DataDir, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// startAutoUpdate runs the weekly update on an interval in the background.
// Scored tournaments are tracked by event key, so overlapping windows never
// double count.
func startAutoUpdate(u *updater.Updater, interval time.Duration, logger *logrus.Logger) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		logger.WithError(err).Error("Failed to create auto-update scheduler")
		return
	}
	sched.Start()

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if _, err := u.Run(context.Background()); err != nil {
				logger.WithError(err).Error("Scheduled weekly update failed")
			}
		}),
	)
	if err != nil {
		logger.WithError(err).Error("Failed to schedule auto-update job")
		return
	}

	logger.WithField("interval", interval.String()).Info("Auto-update job scheduled")
}
