package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"yamdb/database"
	"yamdb/internal/cache"
	"yamdb/internal/config"
	"yamdb/internal/logger"
	"yamdb/internal/mailer"
	"yamdb/internal/microservices/http-api/router"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	appLog := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(appLog)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the database
	db, err := database.Connect(cfg, appLog)
	if err != nil {
		appLog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	ratings, err := cache.NewRedisRatingCache(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		// ratings are recomputed from the database without the cache
		appLog.Warn("rating cache disabled", "error", err)
		ratings = nil
	}
	defer ratings.Close()

	r := router.New(router.Deps{
		DB:      db,
		Config:  cfg,
		Mailer:  mailer.New(cfg, appLog),
		Ratings: ratings,
		Log:     appLog,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLog.Info("server listening", "addr", server.Addr, "env", cfg.GoEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("shutdown", "error", err)
	}
}
