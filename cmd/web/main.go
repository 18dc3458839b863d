package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdamBeresnev/courtbracket/internal/config"
	"github.com/AdamBeresnev/courtbracket/internal/db"
	"github.com/AdamBeresnev/courtbracket/internal/live"
	"github.com/AdamBeresnev/courtbracket/internal/service"
	"github.com/AdamBeresnev/courtbracket/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	database, err := db.InitDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.RunMigrations(database); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := live.NewHub(logger, cfg.CORSOrigins)
	go hub.Run(ctx)

	tournamentStore := store.NewTournamentStore(database)
	tournaments := service.NewTournamentService(
		service.WithStore(tournamentStore),
		service.WithNotifier(hub),
		service.WithLogger(logger),
	)

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: newRouter(&application{
			cfg:         cfg,
			tournaments: tournaments,
			brackets:    tournamentStore,
			hub:         hub,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
