package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/cliente-api/internal/config"
	"github.com/zhouzirui/cliente-api/internal/handler"
	"github.com/zhouzirui/cliente-api/internal/logger"
	"github.com/zhouzirui/cliente-api/internal/metrics"
	"github.com/zhouzirui/cliente-api/internal/model/customer"
	"github.com/zhouzirui/cliente-api/internal/storage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn().Err(envErr).Msg("failed to load .env file, continuing with system environment only")
	}

	store, closer, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open customer store")
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close customer store")
		}
	}()

	opts := handler.Options{
		BasePath:    cfg.Server.BasePath,
		CORSOrigins: cfg.Server.CORSOrigins,
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = metrics.New(store, log)
	}

	router := handler.NewRouter(store, log, opts)

	if err := startServer(ctx, cfg.Server, router, log); err != nil {
		log.Error().Err(err).Msg("server error")
		stop()
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg config.StoreConfig, log zerolog.Logger) (customer.Store, io.Closer, error) {
	var seed []customer.Customer
	if cfg.Seed {
		seed = customer.Seed()
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		seeded, err := store.SeedIfEmpty(ctx, seed)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		log.Info().Str("path", store.Path()).Bool("seeded", seeded).Msg("sqlite customer store ready")
		return store, store, nil
	default:
		log.Info().Int("seeded", len(seed)).Msg("in-memory customer store ready")
		return customer.NewMemoryStore(seed), nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: serverCfg.ReadHeaderTimeout,
		IdleTimeout:       serverCfg.IdleTimeout,
	}

	log.Info().Str("addr", serverCfg.Addr).Str("base_path", serverCfg.BasePath).Msg("cliente-api listening")
	return runServer(ctx, srv, serverCfg.ShutdownTimeout)
}

func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
