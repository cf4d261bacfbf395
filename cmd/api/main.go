package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logging"
	"storefront/internal/messaging"
	"storefront/internal/messaging/kafka"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/routes"
	"storefront/internal/uploads"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := database.OpenBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("❌ Could not open store", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeBackend(); err != nil {
			logger.Warn("Error closing store", "err", err)
		}
	}()

	store := repository.NewStore(backend, repository.Options{
		LegacyDegrade:   cfg.LegacyDegrade,
		SerializeWrites: cfg.SerializeWrites,
		Logger:          logger,
	})

	dir := uploads.New(cfg.UploadDir, logger)
	if err := dir.Ensure(); err != nil {
		logger.Error("❌ Could not prepare uploads directory", "err", err)
		os.Exit(1)
	}

	productCache := cache.New(cfg.ProductCacheTTL)
	defer productCache.Close()

	var events messaging.Publisher = messaging.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		events = kafka.NewPublisher(cfg.KafkaBrokers)
		logger.Info("📨 Publishing events to Kafka", "brokers", cfg.KafkaBrokers)
	}
	defer events.Close()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORSOrigins),
	)
	routes.RegisterRoutes(router, routes.Options{
		Store:     store,
		Uploads:   dir,
		Cache:     productCache,
		Events:    events,
		StaticDir: cfg.StaticDir,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("🚀 Server running", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("❌ Server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "err", err)
	}
}
