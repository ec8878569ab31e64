package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"inkboard/internal/app/server/api"
	"inkboard/internal/app/server/config"
	"inkboard/internal/domain/element"
	redisCache "inkboard/internal/infrastructure/cache/redis"
	"inkboard/internal/infrastructure/storage/postgres"
	"inkboard/internal/utils/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := postgres.New(cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	var cache element.Cache
	if cfg.Cache.RedisAddr != "" {
		rc, err := redisCache.New(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			// The board works without a cache, every list just hits storage.
			log.Warn("redis unavailable, running without element cache",
				slog.String("error", err.Error()))
		} else {
			cache = rc
			defer rc.Close()
		}
	}

	mux := api.New(storage, cache, log)

	srv := &http.Server{
		Addr:    cfg.Server.RunAddress,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("address", cfg.Server.RunAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
