package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/unimatch/backend/config"
	httpDelivery "github.com/unimatch/backend/internal/delivery/http"
	"github.com/unimatch/backend/internal/infrastructure/catalog"
	"github.com/unimatch/backend/internal/infrastructure/metrics"
	"github.com/unimatch/backend/internal/infrastructure/store"
	"github.com/unimatch/backend/internal/logger"
	"github.com/unimatch/backend/internal/usecase"
)

// version can be set at build time with -ldflags "-X main.version=..."
var version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zl.Info("starting UniMatch backend",
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port))

	cat, err := catalog.Load(ctx, catalog.Options{
		Source:  cfg.Catalog.Source,
		Path:    cfg.Catalog.Path,
		URL:     cfg.Catalog.URL,
		Timeout: cfg.Catalog.Timeout,
		Logger:  zl,
	})
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	zl.Info("catalog loaded", zap.String("source", cfg.Catalog.Source), zap.Int("institutions", cat.Len()))

	profileStore, err := store.New(ctx, store.Options{
		Type:          cfg.Store.Type,
		RedisAddr:     cfg.Store.RedisAddr,
		RedisPassword: cfg.Store.RedisPassword,
		RedisDB:       cfg.Store.RedisDB,
		PebbleDir:     cfg.Store.PebbleDir,
		TTL:           cfg.Store.TTL,
	})
	if err != nil {
		return fmt.Errorf("open profile store: %w", err)
	}
	defer func() {
		if err := profileStore.Close(); err != nil {
			zl.Warn("closing profile store", zap.Error(err))
		}
	}()
	zl.Info("profile store ready", zap.String("type", cfg.Store.Type), zap.Duration("ttl", cfg.Store.TTL))

	m := metrics.New()
	normalizer := usecase.NewProfileNormalizer(zl, cfg.Matching.EnableDebugLogging)
	profiles := usecase.NewProfileService(profileStore, cat, normalizer, zl, m)
	matches := usecase.NewMatchService(profiles, cat, zl, m, usecase.MatchServiceConfig{
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})

	httpDelivery.Version = version
	handler := httpDelivery.NewHandler(profiles, matches, cat, zl)
	router := httpDelivery.SetupRouter(cfg, handler, zl, m)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
