// Package service provides business logic layer for profile module.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	membershipModel "github.com/idleforest/team-service/internal/membership/model"
	membershipRepository "github.com/idleforest/team-service/internal/membership/repository"
	"github.com/idleforest/team-service/internal/profile/model"
	"github.com/idleforest/team-service/internal/profile/repository"
	teamModel "github.com/idleforest/team-service/internal/team/model"
	teamRepository "github.com/idleforest/team-service/internal/team/repository"
)

// Service defines the interface for profile business logic operations.
type Service interface {
	// Me returns the authenticated user's profile view with their current
	// team, if any.
	Me(ctx context.Context, userID string) (*model.MeResponse, error)
}

type service struct {
	profiles    repository.Repository
	memberships membershipRepository.Repository
	teams       teamRepository.Repository
	logger      *zap.SugaredLogger
}

// New creates a new profile service instance.
func New(
	profiles repository.Repository,
	memberships membershipRepository.Repository,
	teams teamRepository.Repository,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		profiles:    profiles,
		memberships: memberships,
		teams:       teams,
		logger:      logger,
	}
}

// Me returns the authenticated user's profile view.
//
// Profiles are written by the auth provider's signup hook and may lag behind
// the first authenticated request, so a missing profile row degrades to an
// empty display name instead of failing the call.
func (s *service) Me(ctx context.Context, userID string) (*model.MeResponse, error) {
	displayName := ""
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, model.ErrProfileNotFound) {
		return nil, err
	}
	if profile != nil {
		displayName = profile.DisplayName
	}

	resp := &model.MeResponse{
		UserID:      userID,
		DisplayName: displayName,
	}

	membership, err := s.memberships.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, membershipModel.ErrMembershipNotFound) {
			return resp, nil
		}
		return nil, err
	}

	teamName := ""
	isOwner := false
	team, err := s.teams.GetByID(ctx, membership.TeamID)
	if err == nil {
		teamName = team.Name
		isOwner = team.IsOwnedBy(userID)
	} else if !errors.Is(err, teamModel.ErrTeamNotFound) {
		return nil, err
	}

	resp.Team = &model.CurrentTeam{
		ID:                 membership.TeamID,
		Name:               teamName,
		ContributionPoints: membership.ContributionPoints,
		IsOwner:            isOwner,
	}

	return resp, nil
}
