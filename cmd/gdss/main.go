package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/api"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/backend"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/config"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/hermes"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/ranking"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/scoring"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/session"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/watcher"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Audit store
	var db store.Store
	if cfg.Database.URL != "" {
		if _, err := store.Migrate(cfg.Database.URL, -1); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		db = pg
		logger.Info("connected to database")
	} else {
		db = store.NewMemoryStore()
		logger.Warn("no database configured, audit trail is in-memory")
	}
	defer db.Close()

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Backend
	backendClient := backend.NewHTTPClient(cfg.Backend.URL, cfg.BackendTimeout())

	reconciler := scoring.NewReconciler(cfg.Mode(), logger)
	rankings := ranking.NewService(backendClient, reconciler, cfg.Scoring.Classification, logger)

	// Watcher
	if len(cfg.Watcher.Projects) > 0 {
		if cfg.Backend.Token == "" {
			logger.Warn("watcher has no backend token, backend may reject its calls")
		}
		w := watcher.New(rankings, db, hermesClient, session.Service(cfg.Backend.Token), cfg.Watcher.Projects, cfg.WatchInterval(), logger)
		w.SetupSubscriptions()
		w.Start(ctx)
		defer w.Stop()
		logger.Info("ranking watcher started", "projects", cfg.Watcher.Projects, "interval", cfg.WatchInterval())
	}

	// API server
	router := api.NewRouter(backendClient, db, hermesClient, rankings, cfg, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port, "reconcile_mode", reconciler.Mode())
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Format) == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
