// Package handler provides HTTP handlers for membership endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	inviteModel "github.com/idleforest/team-service/internal/invite/model"
	membershipModel "github.com/idleforest/team-service/internal/membership/model"
	"github.com/idleforest/team-service/internal/membership/service"
	"github.com/idleforest/team-service/internal/middleware"
)

// Handler handles HTTP requests for membership endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new membership handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Join handles POST /join request.
// @Summary Redeem an invite code
// @Tags Membership
// @Accept json
// @Produce json
// @Param request body membershipModel.JoinRequest true "Request"
// @Success 200 {object} membershipModel.JoinResponse
// @Failure 401 {object} ErrorResponse "Unauthenticated"
// @Failure 403 {object} ErrorResponse "Owner cannot switch (body names the owned team)"
// @Failure 404 {object} ErrorResponse "Unknown invite code"
// @Failure 409 {object} ErrorResponse "Already member, or confirmation required (body distinguishes)"
// @Failure 410 {object} ErrorResponse "Expired or exhausted invite"
// @Router /join [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Join(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, "UNAUTHORIZED", "authentication required", http.StatusUnauthorized)
		return
	}

	var req membershipModel.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Join(c.Request.Context(), userID, &req)
	if err != nil {
		h.mapJoinError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// mapJoinError translates join outcomes into the response protocol. The
// rejection branches are first-class outcomes, each with its own code so the
// client can render the right view.
func (h *Handler) mapJoinError(c *gin.Context, err error) {
	var confirmation *membershipModel.ConfirmationRequiredError
	var ownerCannotSwitch *membershipModel.OwnerCannotSwitchError

	switch {
	case errors.Is(err, inviteModel.ErrInviteNotFound):
		notFoundResponse(c, "invite not found")
	case errors.Is(err, inviteModel.ErrInviteExpired):
		errorResponse(c, "INVITE_EXPIRED", "invite has expired", http.StatusGone)
	case errors.Is(err, inviteModel.ErrInviteExhausted):
		errorResponse(c, "INVITE_EXHAUSTED", "invite has no uses remaining", http.StatusGone)
	case errors.Is(err, membershipModel.ErrAlreadyMember):
		errorResponse(c, "ALREADY_MEMBER", "user is already a member of this team", http.StatusConflict)
	case errors.As(err, &confirmation):
		conflictWithTeam(c, "CONFIRMATION_REQUIRED",
			"user already belongs to another team; re-invoke with confirm_switch",
			"current_team", confirmation.CurrentTeamID, confirmation.CurrentTeamName,
			http.StatusConflict)
	case errors.As(err, &ownerCannotSwitch):
		conflictWithTeam(c, "OWNER_CANNOT_SWITCH",
			"team owners must delete their team before joining another",
			"owned_team", ownerCannotSwitch.OwnedTeamID, ownerCannotSwitch.OwnedTeamName,
			http.StatusForbidden)
	default:
		h.logger.Errorw("error joining team", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}

// Current handles GET /membership request.
// @Summary Get the caller's current team membership
// @Tags Membership
// @Produce json
// @Success 200 {object} membershipModel.MembershipResponse
// @Failure 401 {object} ErrorResponse "Unauthenticated"
// @Failure 404 {object} ErrorResponse "User has no team"
// @Router /membership [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Current(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, "UNAUTHORIZED", "authentication required", http.StatusUnauthorized)
		return
	}

	resp, err := h.service.Current(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, membershipModel.ErrMembershipNotFound) {
			notFoundResponse(c, "user has no team")
			return
		}
		h.logger.Errorw("error getting membership", "user_id", userID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Leave handles DELETE /membership request.
// @Summary Leave the current team
// @Tags Membership
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse "Unauthenticated"
// @Failure 403 {object} ErrorResponse "Owner cannot leave"
// @Failure 404 {object} ErrorResponse "User has no team"
// @Router /membership [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Leave(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, "UNAUTHORIZED", "authentication required", http.StatusUnauthorized)
		return
	}

	err := h.service.Leave(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, membershipModel.ErrMembershipNotFound) {
			notFoundResponse(c, "user has no team")
			return
		}
		if errors.Is(err, membershipModel.ErrOwnerCannotLeave) {
			errorResponse(c, "OWNER_CANNOT_LEAVE", "team owners must delete their team instead", http.StatusForbidden)
			return
		}
		h.logger.Errorw("error leaving team", "user_id", userID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "left"})
}
