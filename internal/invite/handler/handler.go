// Package handler provides HTTP handlers for invite endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	inviteModel "github.com/idleforest/team-service/internal/invite/model"
	"github.com/idleforest/team-service/internal/invite/service"
	"github.com/idleforest/team-service/internal/middleware"
)

// Handler handles HTTP requests for invite endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new invite handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateInvite handles POST /invites request.
// @Summary Create an invite for the caller's team
// @Tags Invites
// @Accept json
// @Produce json
// @Param request body inviteModel.CreateInviteRequest true "Request"
// @Success 201 {object} inviteModel.InviteResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Unauthenticated"
// @Failure 403 {object} ErrorResponse "Not a team member"
// @Failure 409 {object} ErrorResponse "Active invite already exists"
// @Router /invites [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateInvite(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, "UNAUTHORIZED", "authentication required", http.StatusUnauthorized)
		return
	}

	var req inviteModel.CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateInvite(c.Request.Context(), userID, &req)
	if err != nil {
		h.mapCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) mapCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, inviteModel.ErrMissingTeamID):
		errorResponse(c, "INVALID_REQUEST", "team_id is required", http.StatusBadRequest)
	case errors.Is(err, inviteModel.ErrInvalidUsesRemaining):
		errorResponse(c, "INVALID_REQUEST", "uses_remaining must be positive", http.StatusBadRequest)
	case errors.Is(err, inviteModel.ErrInvalidExpiry):
		errorResponse(c, "INVALID_REQUEST", "expires_in_days must be positive", http.StatusBadRequest)
	case errors.Is(err, inviteModel.ErrNotTeamMember):
		errorResponse(c, "NOT_TEAM_MEMBER", "caller is not a member of this team", http.StatusForbidden)
	case errors.Is(err, inviteModel.ErrActiveInviteExists):
		errorResponse(c, "INVITE_EXISTS", "an active invite already exists for this team", http.StatusConflict)
	default:
		h.logger.Errorw("error creating invite", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}

// ListInvites handles GET /invites request.
// @Summary List the caller's invites for a team
// @Tags Invites
// @Produce json
// @Param team_id query string true "Team ID"
// @Success 200 {object} inviteModel.ListInvitesResponse
// @Failure 400 {object} ErrorResponse "Missing team_id parameter"
// @Failure 401 {object} ErrorResponse "Unauthenticated"
// @Failure 403 {object} ErrorResponse "Not a team member"
// @Router /invites [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListInvites(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, "UNAUTHORIZED", "authentication required", http.StatusUnauthorized)
		return
	}

	teamID := c.Query("team_id")
	if teamID == "" {
		errorResponse(c, "INVALID_REQUEST", "team_id parameter is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ListInvites(c.Request.Context(), userID, teamID)
	if err != nil {
		if errors.Is(err, inviteModel.ErrNotTeamMember) {
			errorResponse(c, "NOT_TEAM_MEMBER", "caller is not a member of this team", http.StatusForbidden)
			return
		}
		h.logger.Errorw("error listing invites", "team_id", teamID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteInvite handles DELETE /invites request.
// @Summary Revoke an invite
// @Tags Invites
// @Produce json
// @Param invite_id query string true "Invite ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse "Unauthenticated"
// @Failure 403 {object} ErrorResponse "Not the invite creator"
// @Failure 404 {object} ErrorResponse "Invite not found"
// @Router /invites [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) DeleteInvite(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, "UNAUTHORIZED", "authentication required", http.StatusUnauthorized)
		return
	}

	inviteID := c.Query("invite_id")
	if inviteID == "" {
		errorResponse(c, "INVALID_REQUEST", "invite_id parameter is required", http.StatusBadRequest)
		return
	}

	err := h.service.DeleteInvite(c.Request.Context(), userID, inviteID)
	if err != nil {
		if errors.Is(err, inviteModel.ErrInviteNotFound) {
			notFoundResponse(c, "invite not found")
			return
		}
		if errors.Is(err, inviteModel.ErrNotInviteCreator) {
			errorResponse(c, "FORBIDDEN", "only the invite creator may delete it", http.StatusForbidden)
			return
		}
		h.logger.Errorw("error deleting invite", "invite_id", inviteID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GetInviteDetails handles GET /invites/:code request.
// Public endpoint backing the invite landing page.
// @Summary Get public details for an invite code
// @Tags Invites
// @Produce json
// @Param code path string true "Invite code"
// @Success 200 {object} inviteModel.InviteDetailsResponse
// @Failure 404 {object} ErrorResponse "Unknown code"
// @Failure 410 {object} ErrorResponse "Expired or exhausted"
// @Router /invites/{code} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetInviteDetails(c *gin.Context) {
	code := c.Param("code")

	resp, err := h.service.InviteDetails(c.Request.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, inviteModel.ErrInviteNotFound):
			notFoundResponse(c, "invite not found")
		case errors.Is(err, inviteModel.ErrInviteExpired):
			errorResponse(c, "INVITE_EXPIRED", "invite has expired", http.StatusGone)
		case errors.Is(err, inviteModel.ErrInviteExhausted):
			errorResponse(c, "INVITE_EXHAUSTED", "invite has no uses remaining", http.StatusGone)
		default:
			h.logger.Errorw("error getting invite details", "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
