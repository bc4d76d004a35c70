// Package service provides business logic layer for membership module,
// including the join flow that redeems invite codes.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	inviteModel "github.com/idleforest/team-service/internal/invite/model"
	inviteRepository "github.com/idleforest/team-service/internal/invite/repository"
	"github.com/idleforest/team-service/internal/membership/model"
	"github.com/idleforest/team-service/internal/membership/repository"
	teamModel "github.com/idleforest/team-service/internal/team/model"
	teamRepository "github.com/idleforest/team-service/internal/team/repository"
)

// UsageRecorder records invite redemptions. Implementations must return
// immediately and never surface failures.
type UsageRecorder interface {
	Record(inviteID, userID, teamID string, isNewSignup bool)
}

// Service defines the interface for membership business logic operations.
type Service interface {
	// Join redeems an invite code for the authenticated user, enforcing the
	// single-team-membership invariant.
	Join(ctx context.Context, userID string, req *model.JoinRequest) (*model.JoinResponse, error)

	// Current returns the user's current membership.
	Current(ctx context.Context, userID string) (*model.MembershipResponse, error)

	// Leave removes the user from their current team. Owners must delete
	// the team instead.
	Leave(ctx context.Context, userID string) error
}

type service struct {
	repo     repository.Repository
	invites  inviteRepository.Repository
	teams    teamRepository.Repository
	recorder UsageRecorder
	db       *gorm.DB
	logger   *zap.SugaredLogger
}

// New creates a new membership service instance.
func New(
	repo repository.Repository,
	invites inviteRepository.Repository,
	teams teamRepository.Repository,
	rec UsageRecorder,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:     repo,
		invites:  invites,
		teams:    teams,
		recorder: rec,
		db:       db,
		logger:   logger,
	}
}

// Join redeems an invite code for the authenticated user.
//
// The flow resolves the invite, inspects the caller's current membership and
// either joins directly, reports a protocol branch (already member,
// confirmation required, owner cannot switch), or performs a confirmed
// switch. Leaving the old team and joining the new one run in a single
// transaction, with the old row deleted before the new one is inserted so
// the unique index on user_id is never violated by the switch itself.
func (s *service) Join(ctx context.Context, userID string, req *model.JoinRequest) (*model.JoinResponse, error) {
	if req.InviteCode == "" {
		return nil, inviteModel.ErrInviteNotFound
	}

	invite, err := s.invites.GetByCode(ctx, req.InviteCode)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if invite.IsExpired(now) {
		return nil, inviteModel.ErrInviteExpired
	}
	if invite.IsExhausted() {
		return nil, inviteModel.ErrInviteExhausted
	}

	team, err := s.teams.GetByID(ctx, invite.TeamID)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			return nil, inviteModel.ErrInviteNotFound
		}
		return nil, err
	}

	current, err := s.repo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, model.ErrMembershipNotFound) {
		return nil, err
	}

	if current != nil {
		if current.TeamID == invite.TeamID {
			return nil, model.ErrAlreadyMember
		}

		currentTeam, teamErr := s.teams.GetByID(ctx, current.TeamID)
		if teamErr != nil && !errors.Is(teamErr, teamModel.ErrTeamNotFound) {
			return nil, teamErr
		}

		currentTeamName := ""
		if currentTeam != nil {
			currentTeamName = currentTeam.Name
			if currentTeam.IsOwnedBy(userID) {
				return nil, &model.OwnerCannotSwitchError{
					OwnedTeamID:   currentTeam.ID,
					OwnedTeamName: currentTeam.Name,
				}
			}
		}

		if !req.ConfirmSwitch {
			return nil, &model.ConfirmationRequiredError{
				CurrentTeamID:   current.TeamID,
				CurrentTeamName: currentTeamName,
			}
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		// Leave before join: the old row must be gone before the new one
		// exists, or the unique index on user_id rejects the insert.
		if current != nil {
			if delErr := txRepo.Delete(ctx, current.ID); delErr != nil {
				return delErr
			}
		}

		if _, insErr := txRepo.Insert(ctx, invite.TeamID, userID); insErr != nil {
			return insErr
		}

		if invite.UsesRemaining != nil {
			txInvites := inviteRepository.New(tx, s.logger)
			if decErr := txInvites.DecrementUses(ctx, invite.ID); decErr != nil {
				return decErr
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("user joined team",
		"user_id", userID,
		"team_id", invite.TeamID,
		"invite_id", invite.ID,
		"switched", current != nil,
	)

	// Best-effort analytics; the join is already committed.
	s.recorder.Record(invite.ID, userID, invite.TeamID, req.IsNewSignup)

	return &model.JoinResponse{
		Status: model.JoinStatusJoined,
		Team:   model.JoinedTeam{ID: team.ID, Name: team.Name},
	}, nil
}

// Current returns the user's current membership.
func (s *service) Current(ctx context.Context, userID string) (*model.MembershipResponse, error) {
	membership, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	teamName := ""
	team, err := s.teams.GetByID(ctx, membership.TeamID)
	if err == nil {
		teamName = team.Name
	} else if !errors.Is(err, teamModel.ErrTeamNotFound) {
		return nil, err
	}

	return &model.MembershipResponse{
		TeamID:             membership.TeamID,
		TeamName:           teamName,
		ContributionPoints: membership.ContributionPoints,
		JoinedAt:           membership.CreatedAt,
	}, nil
}

// Leave removes the user from their current team.
func (s *service) Leave(ctx context.Context, userID string) error {
	membership, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	isOwner, err := s.teams.IsOwner(ctx, membership.TeamID, userID)
	if err != nil && !errors.Is(err, teamModel.ErrTeamNotFound) {
		return err
	}
	if isOwner {
		return model.ErrOwnerCannotLeave
	}

	if err := s.repo.Delete(ctx, membership.ID); err != nil {
		return err
	}

	s.logger.Infow("user left team", "user_id", userID, "team_id", membership.TeamID)
	return nil
}
