package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	dbadapter "taskmind/internal/adapter/db"
	httpadapter "taskmind/internal/adapter/http"
	"taskmind/internal/adapter/http/handlers"
	httpmiddleware "taskmind/internal/adapter/http/middleware"
	"taskmind/internal/adapter/metrics"
	openaiadapter "taskmind/internal/adapter/openai"
	"taskmind/internal/app/assistant"
	"taskmind/internal/app/service"
	"taskmind/internal/config"
	"taskmind/internal/logging"
	"taskmind/pkg/translator"
)

const shutdownTimeout = 10 * time.Second

// bootstrap loads configuration, installs the global logger and opens a migrated database.
func bootstrap(ctx context.Context) (*config.Config, *zap.Logger, *sqlx.DB, error) {
	cfg := config.LoadConfig()

	logger, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building logger: %w", err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)

	translator.InitTranslator(translator.Config{
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return nil, logger, nil, fmt.Errorf("connecting to %s: %w", cfg.DbDriver, err)
	}
	if err := dbadapter.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, logger, nil, fmt.Errorf("migrating: %w", err)
	}

	return cfg, logger, db, nil
}

func runMigrate(ctx context.Context) error {
	_, logger, db, err := bootstrap(ctx)
	if logger != nil {
		defer syncLogger(logger)
	}
	if err != nil {
		return err
	}
	defer closeDB(logger, db)

	logger.Info("migrations applied")
	return nil
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, logger, db, err := bootstrap(ctx)
	if logger != nil {
		defer syncLogger(logger)
	}
	if err != nil {
		return err
	}
	defer closeDB(logger, db)

	appMetrics := metrics.New()

	taskService := service.NewTaskService(dbadapter.NewTaskRepository(db))
	modelClient := openaiadapter.NewClient(openaiadapter.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	})
	orchestrator := assistant.NewOrchestrator(modelClient, assistant.Config{
		APIKey:      cfg.OpenAIAPIKey,
		CallTimeout: cfg.AITimeout,
	}, appMetrics)
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set, AI endpoints will answer 500")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return fmt.Errorf("setting trusted proxies: %w", err)
	}
	r.Use(
		gin.Recovery(),
		httpmiddleware.RequestIDMiddleware(),
		httpmiddleware.GinZapMiddleware(logger),
		httpmiddleware.MetricsMiddleware(appMetrics),
	)

	exposeDetails := !cfg.IsProduction()
	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:    handlers.NewHealthHandler(db, cfg.OpenAIAPIKey != ""),
		Tasks:     handlers.NewTaskHandler(taskService, exposeDetails),
		Assistant: handlers.NewAssistantHandler(orchestrator, exposeDetails),
	})
	httpadapter.RegisterMetrics(r, appMetrics.Registry())

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("db_driver", cfg.DbDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("could not start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func syncLogger(logger *zap.Logger) {
	if err := logger.Sync(); err != nil {
		zap.L().Debug("failed to sync logger", zap.Error(err))
	}
}

func closeDB(logger *zap.Logger, db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Warn("failed to close database connection", zap.Error(err))
	}
}
