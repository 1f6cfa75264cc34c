// Command vasanam serves the movie-dialogue search API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vasanam/vasanam/internal/api"
	"github.com/vasanam/vasanam/internal/config"
	"github.com/vasanam/vasanam/internal/postgres"
	"github.com/vasanam/vasanam/internal/ratelimit/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewStore(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return err
	}
	defer db.Close()

	limiterStore, err := newLimiterStore(cfg)
	if err != nil {
		return err
	}
	defer limiterStore.Close()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(cfg, db, db, limiterStore),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newLimiterStore picks the admission backend: Redis when configured so
// replicas share windows, otherwise the in-memory store. Losing windows
// on restart is an accepted trade-off either way.
func newLimiterStore(cfg *config.Config) (store.Store, error) {
	if cfg.RedisURL == "" {
		slog.Info("admission store: memory")
		return store.NewMemory(), nil
	}

	st, err := store.NewRedis(store.RedisConfig{
		URL:      cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("admission store: redis", "addr", cfg.RedisURL)
	return st, nil
}
