// Package router provides invite module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	analyticsRepository "github.com/idleforest/team-service/internal/analytics/repository"
	"github.com/idleforest/team-service/internal/config"
	"github.com/idleforest/team-service/internal/invite/handler"
	"github.com/idleforest/team-service/internal/invite/repository"
	"github.com/idleforest/team-service/internal/invite/service"
	membershipRepository "github.com/idleforest/team-service/internal/membership/repository"
	"github.com/idleforest/team-service/internal/middleware"
	profileRepository "github.com/idleforest/team-service/internal/profile/repository"
	teamRepository "github.com/idleforest/team-service/internal/team/repository"
)

// RegisterRoutes registers invite module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, auth gin.HandlerFunc, cfg config.InviteConfig, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	teams := teamRepository.New(db, logger)
	memberships := membershipRepository.New(db, logger)
	stats := analyticsRepository.New(db, logger)
	profiles := profileRepository.New(db, logger)

	svc := service.New(repo, teams, memberships, stats, profiles, cfg, logger)
	h := handler.New(svc, logger)

	limiter := middleware.RateLimit(middleware.ModerateLimit)

	r.POST("/invites", auth, limiter, h.CreateInvite)
	r.GET("/invites", auth, h.ListInvites)
	r.DELETE("/invites", auth, h.DeleteInvite)
	r.GET("/invites/:code", h.GetInviteDetails)
}
