// Package router provides membership module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	inviteRepository "github.com/idleforest/team-service/internal/invite/repository"
	"github.com/idleforest/team-service/internal/membership/handler"
	"github.com/idleforest/team-service/internal/membership/repository"
	"github.com/idleforest/team-service/internal/membership/service"
	"github.com/idleforest/team-service/internal/middleware"
	teamRepository "github.com/idleforest/team-service/internal/team/repository"
)

// RegisterRoutes registers membership module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rec service.UsageRecorder, auth gin.HandlerFunc, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	invites := inviteRepository.New(db, logger)
	teams := teamRepository.New(db, logger)

	svc := service.New(repo, invites, teams, rec, db, logger)
	h := handler.New(svc, logger)

	limiter := middleware.RateLimit(middleware.StrictLimit)

	r.POST("/join", auth, limiter, h.Join)
	r.GET("/membership", auth, h.Current)
	r.DELETE("/membership", auth, h.Leave)
}
