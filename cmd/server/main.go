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

	"golang.org/x/sync/errgroup"

	"github.com/Archonic944/Imposter/internal/config"
	"github.com/Archonic944/Imposter/internal/database"
	"github.com/Archonic944/Imposter/internal/game"
	"github.com/Archonic944/Imposter/internal/server"
	"github.com/Archonic944/Imposter/internal/words"
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
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	catalog, err := words.Load()
	if err != nil {
		return fmt.Errorf("loading word catalog: %w", err)
	}

	// --- Persistence backend ---
	// A configured DB path means SQLite, exclusively. Otherwise games
	// live in process memory and die with it.
	var (
		backend game.Backend
		db      *sql.DB
	)
	if cfg.DBPath != "" {
		db, err = database.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("connecting to sqlite: %w", err)
		}
		defer db.Close()
		backend = game.NewSQLiteBackend(db)
		logger.Info("using sqlite backend", "path", cfg.DBPath)
	} else {
		backend = game.NewMemoryBackend()
		logger.Info("using in-memory backend")
	}

	store := game.NewStore(backend, catalog, logger)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, store, catalog, db)

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
