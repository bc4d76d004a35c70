// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/idleforest/team-service/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// GetByID finds a team by its id.
	GetByID(ctx context.Context, teamID string) (*model.Team, error)

	// IsOwner reports whether userID is the creator of the team.
	IsOwner(ctx context.Context, teamID, userID string) (bool, error)

	// MemberCount returns the number of members of a team.
	MemberCount(ctx context.Context, teamID string) (int64, error)

	// GetTeamMembers returns all members of a team with their display names.
	GetTeamMembers(ctx context.Context, teamID string) ([]model.TeamMember, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetByID finds a team by its id.
func (r *repository) GetByID(ctx context.Context, teamID string) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Where("id = ?", teamID).
		First(&team).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrTeamNotFound
		}
		r.logger.Errorw("GetByID database error", "team_id", teamID, "error", err)
		return nil, err
	}

	return &team, nil
}

// IsOwner reports whether userID is the creator of the team.
func (r *repository) IsOwner(ctx context.Context, teamID, userID string) (bool, error) {
	team, err := r.GetByID(ctx, teamID)
	if err != nil {
		return false, err
	}
	return team.IsOwnedBy(userID), nil
}

// MemberCount returns the number of members of a team.
func (r *repository) MemberCount(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("team_members").
		Where("team_id = ?", teamID).
		Count(&count).Error

	if err != nil {
		r.logger.Errorw("MemberCount database error", "team_id", teamID, "error", err)
		return 0, err
	}

	return count, nil
}

// GetTeamMembers returns all members of a team with their display names.
// Members without a profile row still appear, with an empty display name.
func (r *repository) GetTeamMembers(ctx context.Context, teamID string) ([]model.TeamMember, error) {
	var members []model.TeamMember

	err := r.db.WithContext(ctx).
		Table("team_members").
		Select("team_members.user_id, COALESCE(profiles.display_name, '') as display_name, team_members.contribution_points").
		Joins("LEFT JOIN profiles ON profiles.id = team_members.user_id").
		Where("team_members.team_id = ?", teamID).
		Order("team_members.contribution_points DESC, team_members.user_id ASC").
		Scan(&members).Error

	if err != nil {
		r.logger.Errorw("GetTeamMembers database error", "team_id", teamID, "error", err)
		return nil, err
	}

	if members == nil {
		members = []model.TeamMember{}
	}

	return members, nil
}
