// Package handler provides HTTP handlers for profile endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/idleforest/team-service/internal/middleware"
	"github.com/idleforest/team-service/internal/profile/service"
)

// Handler handles HTTP requests for profile endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new profile handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Me handles GET /me request.
// @Summary Get the authenticated user's profile and team
// @Tags Profile
// @Produce json
// @Success 200 {object} model.MeResponse
// @Failure 401 {object} ErrorResponse "Unauthenticated"
// @Router /me [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, "UNAUTHORIZED", "authentication required", http.StatusUnauthorized)
		return
	}

	resp, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorw("error getting profile", "user_id", userID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
