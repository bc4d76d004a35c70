// Package service provides business logic layer for invite module.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	analyticsRepository "github.com/idleforest/team-service/internal/analytics/repository"
	"github.com/idleforest/team-service/internal/config"
	"github.com/idleforest/team-service/internal/invite/model"
	"github.com/idleforest/team-service/internal/invite/repository"
	membershipModel "github.com/idleforest/team-service/internal/membership/model"
	membershipRepository "github.com/idleforest/team-service/internal/membership/repository"
	profileRepository "github.com/idleforest/team-service/internal/profile/repository"
	teamModel "github.com/idleforest/team-service/internal/team/model"
	teamRepository "github.com/idleforest/team-service/internal/team/repository"
	"github.com/idleforest/team-service/pkg/invitecode"
)

// Service defines the interface for invite business logic operations.
type Service interface {
	// CreateInvite creates an invite for a team the caller belongs to.
	CreateInvite(ctx context.Context, creatorID string, req *model.CreateInviteRequest) (*model.InviteResponse, error)

	// ListInvites returns the caller's non-expired invites for a team.
	ListInvites(ctx context.Context, callerID, teamID string) (*model.ListInvitesResponse, error)

	// DeleteInvite revokes an invite. Only the creator may revoke.
	DeleteInvite(ctx context.Context, callerID, inviteID string) error

	// InviteDetails returns the public landing view for an invite code.
	InviteDetails(ctx context.Context, code string) (*model.InviteDetailsResponse, error)
}

type service struct {
	repo        repository.Repository
	teams       teamRepository.Repository
	memberships membershipRepository.Repository
	stats       analyticsRepository.Repository
	profiles    profileRepository.Repository
	cfg         config.InviteConfig
	logger      *zap.SugaredLogger
}

// New creates a new invite service instance.
func New(
	repo repository.Repository,
	teams teamRepository.Repository,
	memberships membershipRepository.Repository,
	stats analyticsRepository.Repository,
	profiles profileRepository.Repository,
	cfg config.InviteConfig,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:        repo,
		teams:       teams,
		memberships: memberships,
		stats:       stats,
		profiles:    profiles,
		cfg:         cfg,
		logger:      logger,
	}
}

// CreateInvite creates an invite for a team the caller belongs to.
func (s *service) CreateInvite(ctx context.Context, creatorID string, req *model.CreateInviteRequest) (*model.InviteResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	if err := s.requireMembership(ctx, creatorID, req.TeamID); err != nil {
		return nil, err
	}

	// One active invite per (team, creator). This is a prior-read check;
	// a duplicate slipping through a concurrent race is accepted.
	existing, err := s.repo.ListByTeamAndCreator(ctx, req.TeamID, creatorID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range existing {
		if !existing[i].IsExpired(now) {
			return nil, model.ErrActiveInviteExists
		}
	}

	code, err := invitecode.Generate(s.cfg.CodeLength)
	if err != nil {
		// Randomness failure is fatal; never retried with a weaker source.
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	invite := &model.Invite{
		ID:            uuid.NewString(),
		TeamID:        req.TeamID,
		CreatedBy:     creatorID,
		Code:          code,
		UsesRemaining: req.UsesRemaining,
		CreatedAt:     now,
	}
	if req.ExpiresInDays != nil {
		expiresAt := now.AddDate(0, 0, *req.ExpiresInDays)
		invite.ExpiresAt = &expiresAt
	}

	if err := s.repo.Create(ctx, invite); err != nil {
		return nil, err
	}

	s.logger.Infow("invite created",
		"invite_id", invite.ID,
		"team_id", invite.TeamID,
		"created_by", creatorID,
	)

	resp := s.toResponse(invite, nil)
	return &resp, nil
}

// ListInvites returns the caller's non-expired invites for a team. Redemption
// stats are best-effort: on enrichment failure the invites are returned
// without stats.
func (s *service) ListInvites(ctx context.Context, callerID, teamID string) (*model.ListInvitesResponse, error) {
	if teamID == "" {
		return nil, model.ErrMissingTeamID
	}

	if err := s.requireMembership(ctx, callerID, teamID); err != nil {
		return nil, err
	}

	invites, err := s.repo.ListByTeamAndCreator(ctx, teamID, callerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	active := make([]model.Invite, 0, len(invites))
	ids := make([]string, 0, len(invites))
	for i := range invites {
		if invites[i].IsExpired(now) {
			continue
		}
		active = append(active, invites[i])
		ids = append(ids, invites[i].ID)
	}

	statsByInvite, err := s.stats.StatsForInvites(ctx, ids)
	if err != nil {
		s.logger.Warnw("invite stats enrichment failed", "team_id", teamID, "error", err)
		statsByInvite = nil
	}

	resp := &model.ListInvitesResponse{Invites: make([]model.InviteResponse, 0, len(active))}
	for i := range active {
		var stats *model.InviteStats
		if usage, ok := statsByInvite[active[i].ID]; ok {
			stats = &model.InviteStats{
				Redemptions: usage.Redemptions,
				NewSignups:  usage.NewSignups,
			}
		}
		resp.Invites = append(resp.Invites, s.toResponse(&active[i], stats))
	}

	return resp, nil
}

// DeleteInvite revokes an invite. Only the creator may revoke.
func (s *service) DeleteInvite(ctx context.Context, callerID, inviteID string) error {
	if inviteID == "" {
		return model.ErrInviteNotFound
	}

	invite, err := s.repo.GetByID(ctx, inviteID)
	if err != nil {
		return err
	}

	if invite.CreatedBy != callerID {
		return model.ErrNotInviteCreator
	}

	if err := s.repo.Delete(ctx, inviteID); err != nil {
		return err
	}

	s.logger.Infow("invite revoked", "invite_id", inviteID, "created_by", callerID)
	return nil
}

// InviteDetails returns the public landing view for an invite code.
func (s *service) InviteDetails(ctx context.Context, code string) (*model.InviteDetailsResponse, error) {
	invite, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if invite.IsExpired(time.Now()) {
		return nil, model.ErrInviteExpired
	}
	if invite.IsExhausted() {
		return nil, model.ErrInviteExhausted
	}

	team, err := s.teams.GetByID(ctx, invite.TeamID)
	if err != nil {
		// An invite pointing at a deleted team is as good as no invite.
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			return nil, model.ErrInviteNotFound
		}
		return nil, err
	}

	memberCount, err := s.teams.MemberCount(ctx, invite.TeamID)
	if err != nil {
		s.logger.Warnw("member count lookup failed", "team_id", invite.TeamID, "error", err)
		memberCount = 0
	}

	inviterName, err := s.profiles.DisplayName(ctx, invite.CreatedBy)
	if err != nil {
		s.logger.Warnw("inviter name lookup failed", "user_id", invite.CreatedBy, "error", err)
		inviterName = ""
	}

	return &model.InviteDetailsResponse{
		Code:        invite.Code,
		TeamID:      team.ID,
		TeamName:    team.Name,
		MemberCount: memberCount,
		InviterName: inviterName,
		ExpiresAt:   invite.ExpiresAt,
	}, nil
}

// requireMembership verifies the user belongs to the team.
func (s *service) requireMembership(ctx context.Context, userID, teamID string) error {
	membership, err := s.memberships.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, membershipModel.ErrMembershipNotFound) {
			return model.ErrNotTeamMember
		}
		return err
	}
	if membership.TeamID != teamID {
		return model.ErrNotTeamMember
	}
	return nil
}

// validateCreateRequest validates the create invite request.
func validateCreateRequest(req *model.CreateInviteRequest) error {
	if req.TeamID == "" {
		return model.ErrMissingTeamID
	}
	if req.UsesRemaining != nil && *req.UsesRemaining <= 0 {
		return model.ErrInvalidUsesRemaining
	}
	if req.ExpiresInDays != nil && *req.ExpiresInDays <= 0 {
		return model.ErrInvalidExpiry
	}
	return nil
}

func (s *service) toResponse(invite *model.Invite, stats *model.InviteStats) model.InviteResponse {
	return model.InviteResponse{
		ID:            invite.ID,
		TeamID:        invite.TeamID,
		Code:          invite.Code,
		ShareURL:      s.cfg.ShareURL(invite.Code),
		UsesRemaining: invite.UsesRemaining,
		ExpiresAt:     invite.ExpiresAt,
		CreatedAt:     invite.CreatedAt,
		Stats:         stats,
	}
}
