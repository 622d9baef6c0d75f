// Package server wires the VOC insight service together and runs its HTTP
// daemon.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/webboardlab/voc-insight/internal/access"
	"github.com/webboardlab/voc-insight/internal/api"
	"github.com/webboardlab/voc-insight/internal/classifier"
	"github.com/webboardlab/voc-insight/internal/config"
	"github.com/webboardlab/voc-insight/internal/database"
	"github.com/webboardlab/voc-insight/internal/loader"
	"github.com/webboardlab/voc-insight/internal/logger"
	"github.com/webboardlab/voc-insight/internal/sheets"
	"github.com/webboardlab/voc-insight/internal/storage"
	"github.com/webboardlab/voc-insight/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

// Run builds the full service from configuration and blocks until a
// shutdown signal or a fatal startup error.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting voc insight server",
		logger.Int("port", cfg.Service.Port),
		logger.Bool("debug", cfg.Service.Debug))

	tp := telemetry.NewProvider()

	db, err := database.NewConnection(database.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sheetClient, err := sheets.NewGoogleClient(ctx, sheets.Config{
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		CredentialsFile: cfg.Sheets.CredentialsFile,
		ReadsPerSecond:  cfg.Sheets.ReadsPerSecond,
		ReadBurst:       cfg.Sheets.ReadBurst,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	cls := classifier.New(log, classifier.Config{BodyCap: cfg.Service.BodyCap})
	cache := loader.NewCached(loader.New(sheetClient, cls, log, tp), cfg.Service.CacheTTL, log, tp)

	refresher := loader.NewRefresher(cache, cfg.Service.RefreshInterval, log, tp)
	refresher.Start(ctx)
	defer refresher.Stop()

	if cfg.Elasticsearch.URL != "" {
		archive, archErr := storage.NewArchiveWriter(storage.Config{
			URL:      cfg.Elasticsearch.URL,
			Username: cfg.Elasticsearch.Username,
			Password: cfg.Elasticsearch.Password,
		}, log, tp)
		if archErr != nil {
			return fmt.Errorf("failed to create archive writer: %w", archErr)
		}
		go archiveOnce(ctx, cache, archive, log)
	}

	accessService := access.NewService(database.NewAccessRepository(db), cache, log)

	handler := api.NewHandler(cache, accessService, tp, log, cfg.Service.Name, cfg.Service.Version)
	srv := api.NewServer(handler, tp.Handler(), api.ServerConfig{
		Port:  cfg.Service.Port,
		Debug: cfg.Service.Debug,
	})

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info("server stopped gracefully")
		return nil
	}
}

// archiveOnce performs an initial load and ships it to the archive. Archive
// failures are logged, never fatal: the dashboard works without it.
func archiveOnce(ctx context.Context, cache *loader.CachedLoader, archive *storage.ArchiveWriter, log logger.Logger) {
	if err := archive.EnsureIndex(ctx); err != nil {
		log.Warn("skipping archive, index setup failed", logger.Error(err))
		return
	}
	table, err := cache.Get(ctx)
	if err != nil {
		log.Warn("skipping archive, initial load failed", logger.Error(err))
		return
	}
	if err := archive.ArchiveTable(ctx, table); err != nil {
		log.Warn("archive failed", logger.Error(err))
	}
}
