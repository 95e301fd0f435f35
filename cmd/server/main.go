package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/healingizz/wellquest/internal/config"
	"github.com/healingizz/wellquest/internal/database"
	"github.com/healingizz/wellquest/internal/server"
	"github.com/healingizz/wellquest/internal/session"
	"github.com/healingizz/wellquest/internal/store"
	"github.com/healingizz/wellquest/internal/wellness"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	// .env is optional, the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Local store ---
	local, err := store.NewLocalStore(cfg.DataDir, logger)
	if err != nil {
		return fmt.Errorf("opening local store: %w", err)
	}
	logger.Info("local store ready", "dir", cfg.DataDir)

	// --- Remote store (optional) ---
	var remote *store.RemoteStore
	var remoteDB *sql.DB
	if cfg.RemoteDBURL != "" {
		remoteDB, err = database.Open(ctx, cfg.RemoteDBURL)
		if err != nil {
			return fmt.Errorf("connecting to remote store: %w", err)
		}
		defer remoteDB.Close()

		remote, err = store.NewRemoteStore(ctx, remoteDB)
		if err != nil {
			return fmt.Errorf("preparing remote store: %w", err)
		}
		logger.Info("connected to remote store")
	} else {
		logger.Info("running in local-only mode")
	}

	// --- Activity catalog ---
	catalog := wellness.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = wellness.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		logger.Info("loaded activity catalog", "path", cfg.CatalogPath, "activities", len(catalog))
	}

	app := &server.App{
		Logger:   logger,
		Config:   cfg,
		Catalog:  catalog,
		Rules:    wellness.DefaultBadgeRules(),
		Recon:    store.NewReconciler(local, remote, logger),
		Remote:   remote,
		Sessions: session.NewRegistry(time.Second),
		Broker:   server.NewBroker(),
		RemoteDB: remoteDB,
	}

	srv := server.New(cfg.HTTPAddr, logger, app)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
