// Package service provides business logic layer for team module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/idleforest/team-service/internal/team/model"
	"github.com/idleforest/team-service/internal/team/repository"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// GetTeam returns a team with its members.
	GetTeam(ctx context.Context, teamID string) (*model.TeamResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetTeam returns a team with its members.
func (s *service) GetTeam(ctx context.Context, teamID string) (*model.TeamResponse, error) {
	if teamID == "" {
		return nil, model.ErrInvalidTeamID
	}

	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.GetTeamMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &model.TeamResponse{
		ID:      team.ID,
		Name:    team.Name,
		Members: members,
	}, nil
}
