/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the schedule engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration from environment
  2. Build logger
  3. Open the schedule store (SQLite or in-memory)
  4. Create the API handler and seed the default schedule if needed
  5. Start the HTTP server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database connection
  4. Exit

EXAMPLES:
  # Run with file database
  DB_PATH=./data/schedule.db ./server

  # Run with in-memory store on a different port
  DB_PATH=memory HTTP_PORT=3000 ./server

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/warp/schedule-engine/api"
	"github.com/warp/schedule-engine/config"
	"github.com/warp/schedule-engine/store"
	"github.com/warp/schedule-engine/store/memory"
	"github.com/warp/schedule-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	var scheduleStore store.ScheduleStore
	if cfg.UseMemoryStore() {
		scheduleStore = memory.New()
		logger.Info("using in-memory store")
	} else {
		st, err := sqlite.New(cfg.DBPath)
		if err != nil {
			logger.Fatal("failed to open database", zap.String("path", cfg.DBPath), zap.Error(err))
		}
		defer st.Close()
		scheduleStore = st
		logger.Info("using sqlite store", zap.String("path", cfg.DBPath))
	}

	handler, err := api.NewHandler(scheduleStore, logger)
	if err != nil {
		logger.Fatal("failed to create handler", zap.Error(err))
	}
	if err := handler.Load(context.Background()); err != nil {
		logger.Fatal("failed to load schedule", zap.Error(err))
	}

	router := api.NewRouter(handler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.Int("port", cfg.HTTPPort),
			zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func buildLogger(cfg config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
	}

	var zapCfg zap.Config
	if cfg.IsLocal() {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = level
	return zapCfg.Build()
}
