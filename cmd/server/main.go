package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bobby-s-dev/agri-optimizer/internal/api"
	"github.com/bobby-s-dev/agri-optimizer/internal/config"
	"github.com/bobby-s-dev/agri-optimizer/internal/scheduler"
	"github.com/bobby-s-dev/agri-optimizer/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func newLogger() *zap.Logger {
	if os.Getenv("LOG_LEVEL") == "debug" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

func main() {
	logger := newLogger()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting Agri Optimizer Service")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	analyzer, err := services.NewAnalyzerFromConfig(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize analyzer", zap.Error(err))
	}
	defer analyzer.Close()

	logger.Info("Estimator ready",
		zap.String("factor_version", analyzer.Estimator().Table().Version),
		zap.String("cost_policy", string(analyzer.Estimator().Policy())))

	prewarmScheduler := scheduler.NewScheduler(
		analyzer,
		cfg.Scheduler.DefaultPlaces,
		cfg.Scheduler.Spec,
		logger,
	)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		JSONEncoder:  json.Marshal,
		ErrorHandler: api.ErrorHandler,
	})

	handler := api.NewHandler(analyzer, prewarmScheduler, logger)
	api.SetupRoutes(app, handler)

	if len(cfg.Scheduler.DefaultPlaces) > 0 {
		if err := prewarmScheduler.Start(); err != nil {
			logger.Fatal("Failed to start scheduler",
				zap.String("spec", cfg.Scheduler.Spec),
				zap.Error(err))
		}
	}

	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prewarmScheduler.Stop()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
