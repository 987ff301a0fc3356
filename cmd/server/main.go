package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/raymondartguy/portfolio-backend/internal/config"
	"github.com/raymondartguy/portfolio-backend/internal/models"
	"github.com/raymondartguy/portfolio-backend/internal/services"
	"github.com/raymondartguy/portfolio-backend/internal/storage"
	"github.com/raymondartguy/portfolio-backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Init("info")
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.Server.LogLevel)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}
	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("failed to seed default data")
	}

	ctx := context.Background()
	store, err := storage.New(ctx, &cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize object store")
	}

	services.InitAuditLogger(models.GetDB())

	app := buildApp(cfg, models.GetDB(), store)

	app.sweeper.StartScheduler()
	defer app.sweeper.StopScheduler()

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(logger.GinLogger(), logger.GinRecovery())
	registerRoutes(r, cfg, app)

	srv := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
}
