package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/pokedex-ingest/internal/config"
	"github.com/JonMunkholm/pokedex-ingest/internal/core"
	"github.com/JonMunkholm/pokedex-ingest/internal/core/tables"
	"github.com/JonMunkholm/pokedex-ingest/internal/database"
	"github.com/JonMunkholm/pokedex-ingest/internal/ingest"
	"github.com/JonMunkholm/pokedex-ingest/internal/logging"
	"github.com/JonMunkholm/pokedex-ingest/internal/lookup"
	"github.com/JonMunkholm/pokedex-ingest/internal/sprite"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithRunID(ctx, uuid.NewString())
	logger := logging.FromContext(ctx)

	logger.Info("configuration loaded", "config", cfg.String())

	conn, err := database.Connect(ctx, database.ConnectConfig{
		URL:      cfg.Database.URL,
		Attempts: cfg.Database.ConnectRetries,
		Delay:    cfg.Database.ConnectDelay,
		Timeout:  cfg.Database.ConnectTimeout,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return 1
	}
	defer conn.Close(context.Background())

	logger.Info("connected to database", "name", conn.Database())

	tx, err := conn.Begin(ctx)
	if err != nil {
		logger.Error("failed to begin transaction", "error", err)
		return 1
	}
	// No-op once the pipeline has committed.
	defer tx.Rollback(context.Background())

	reg := core.NewRegistry()
	tables.Register(reg, lookup.New())
	logger.Info("tables registered", "count", reg.TableCount(), "groups", len(reg.Groups()))

	var repo sprite.Repository = sprite.LocalRepository{Dir: cfg.Sprites.Dir}
	if cfg.Sprites.Clone {
		repo = sprite.GitRepository{
			Dir:     cfg.Sprites.Dir,
			URL:     cfg.Sprites.RepoURL,
			WorkDir: cfg.Sprites.CloneDir,
		}
	}

	pipeline := ingest.New(tx, ingest.Options{
		Registry:   reg,
		Open:       core.DirOpener(cfg.Source.CSVDir),
		Sprites:    os.DirFS(cfg.Sprites.Dir),
		Repository: repo,
	})

	report, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("ingest failed", "error", err)
		return 1
	}

	if failed := report.Failed(); len(failed) > 0 {
		for _, s := range failed {
			logger.Error("stage failed", "stage", s.Name, "table", s.Table, "error", s.Err)
		}
		logger.Warn("ingest committed with failed stages",
			"failed", len(failed),
			"succeeded", len(report.Succeeded()),
		)
		return 1
	}

	logger.Info("ingest complete", "stages", len(report.Stages), "inserted", report.Inserted())
	return 0
}
