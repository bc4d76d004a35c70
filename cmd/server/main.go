// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/idleforest/team-service/internal/analytics/recorder"
	analyticsRepository "github.com/idleforest/team-service/internal/analytics/repository"
	"github.com/idleforest/team-service/internal/config"
	"github.com/idleforest/team-service/internal/database/database"
	"github.com/idleforest/team-service/internal/database/migrate"
	"github.com/idleforest/team-service/internal/health"
	inviteRouter "github.com/idleforest/team-service/internal/invite/router"
	membershipRouter "github.com/idleforest/team-service/internal/membership/router"
	"github.com/idleforest/team-service/internal/middleware"
	profileRouter "github.com/idleforest/team-service/internal/profile/router"
	teamRouter "github.com/idleforest/team-service/internal/team/router"
	"github.com/idleforest/team-service/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	gin.SetMode(cfg.GinMode)

	db, err := database.New()
	if err != nil {
		appLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			appLogger.Errorw("failed to close database", "error", closeErr)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		appLogger.Fatalw("failed to apply migrations", "error", err)
	}

	// Analytics writes go through a separate service-role connection. The
	// acting user's connection has no write access to invite_uses.
	serviceDB, err := database.NewService()
	if err != nil {
		appLogger.Fatalw("failed to connect service database", "error", err)
	}
	defer func() {
		if closeErr := database.Close(serviceDB); closeErr != nil {
			appLogger.Errorw("failed to close service database", "error", closeErr)
		}
	}()

	rec := recorder.New(analyticsRepository.New(serviceDB, appLogger), appLogger)

	r := gin.New()
	r.Use(middleware.Logger(appLogger))
	r.Use(middleware.Recovery(appLogger))

	auth := middleware.Auth(cfg.Auth, appLogger)

	healthHandler := health.New(db, appLogger)
	r.GET("/health", healthHandler.Check)

	teamRouter.RegisterRoutes(r, db, appLogger)
	profileRouter.RegisterRoutes(r, db, auth, appLogger)
	inviteRouter.RegisterRoutes(r, db, auth, cfg.Invite, appLogger)
	membershipRouter.RegisterRoutes(r, db, rec, auth, appLogger)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Infow("starting server", "address", srv.Addr)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			appLogger.Fatalw("server failed", "error", serveErr)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorw("server shutdown failed", "error", err)
	}

	// Drain pending analytics writes before the process exits.
	rec.Wait()

	appLogger.Infow("server stopped")
}
