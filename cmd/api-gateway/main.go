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

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/roster-availability-api/api/swagger"
	"github.com/noah-isme/roster-availability-api/internal/app"
	"github.com/noah-isme/roster-availability-api/internal/handler"
	"github.com/noah-isme/roster-availability-api/internal/service"
	"github.com/noah-isme/roster-availability-api/pkg/config"
	"github.com/noah-isme/roster-availability-api/pkg/database"
	"github.com/noah-isme/roster-availability-api/pkg/logger"
)

// @title Roster Availability API
// @version 1.0.0
// @description Weekly trader availability and daily resource reports.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("connect database", zap.Error(err))
	}
	defer db.Close()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	svc := app.NewServices(db, logr, metrics)
	loc := cfg.Roster.Location()

	handlers := handler.Handlers{
		Patterns:     handler.NewWeeklyPatternHandler(svc.Patterns),
		Requests:     handler.NewTraderRequestHandler(svc.Requests),
		Preferences:  handler.NewPreferenceHandler(svc.Preferences),
		Availability: handler.NewAvailabilityHandler(svc.Availability, loc),
		Reports:      handler.NewReportHandler(svc.Reports, svc.Exports, loc),
		Ops:          handler.NewMetricsHandler(metrics, db),
	}

	r := handler.NewRouter(handler.RouterOptions{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableMetrics:  cfg.Metrics.Enabled,
		EnableExports:  cfg.Exports.Enabled,
	}, handlers, logr, metrics)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("server shutdown", zap.Error(err))
		}
	}()

	logr.Sugar().Infow("server starting", "addr", server.Addr, "env", cfg.Env, "timezone", loc.String())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logr.Error("server failed", zap.Error(err))
		os.Exit(1)
	}
	logr.Info("server stopped")
}
