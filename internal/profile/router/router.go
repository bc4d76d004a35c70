// Package router provides profile module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	membershipRepository "github.com/idleforest/team-service/internal/membership/repository"
	"github.com/idleforest/team-service/internal/profile/handler"
	"github.com/idleforest/team-service/internal/profile/repository"
	"github.com/idleforest/team-service/internal/profile/service"
	teamRepository "github.com/idleforest/team-service/internal/team/repository"
)

// RegisterRoutes registers profile module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, auth gin.HandlerFunc, logger *zap.SugaredLogger) {
	profiles := repository.New(db, logger)
	memberships := membershipRepository.New(db, logger)
	teams := teamRepository.New(db, logger)

	svc := service.New(profiles, memberships, teams, logger)
	h := handler.New(svc, logger)

	r.GET("/me", auth, h.Me)
}
