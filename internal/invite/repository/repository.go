// Package repository provides data access layer for invite module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/idleforest/team-service/internal/invite/model"
)

// Repository defines the interface for invite data access operations.
type Repository interface {
	// Create inserts a new invite row.
	Create(ctx context.Context, invite *model.Invite) error

	// GetByID finds an invite by its id.
	GetByID(ctx context.Context, inviteID string) (*model.Invite, error)

	// GetByCode finds an invite by its unique code.
	GetByCode(ctx context.Context, code string) (*model.Invite, error)

	// ListByTeamAndCreator returns the creator's invites for a team,
	// newest first. Expired entries are included; callers filter them.
	ListByTeamAndCreator(ctx context.Context, teamID, creatorID string) ([]model.Invite, error)

	// DecrementUses decrements uses_remaining by one, atomically and only
	// while the counter is positive. Returns ErrInviteExhausted when no
	// uses are left; the counter never goes negative. Must only be called
	// for invites with a finite uses bound.
	DecrementUses(ctx context.Context, inviteID string) error

	// Delete removes an invite row.
	Delete(ctx context.Context, inviteID string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new invite repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a new invite row.
func (r *repository) Create(ctx context.Context, invite *model.Invite) error {
	err := r.db.WithContext(ctx).Create(invite).Error
	if err != nil {
		r.logger.Errorw("Create database error",
			"team_id", invite.TeamID,
			"created_by", invite.CreatedBy,
			"error", err,
		)
		return err
	}
	return nil
}

// GetByID finds an invite by its id.
func (r *repository) GetByID(ctx context.Context, inviteID string) (*model.Invite, error) {
	var invite model.Invite
	err := r.db.WithContext(ctx).
		Where("id = ?", inviteID).
		First(&invite).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrInviteNotFound
		}
		r.logger.Errorw("GetByID database error", "invite_id", inviteID, "error", err)
		return nil, err
	}

	return &invite, nil
}

// GetByCode finds an invite by its unique code.
func (r *repository) GetByCode(ctx context.Context, code string) (*model.Invite, error) {
	var invite model.Invite
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&invite).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrInviteNotFound
		}
		r.logger.Errorw("GetByCode database error", "error", err)
		return nil, err
	}

	return &invite, nil
}

// ListByTeamAndCreator returns the creator's invites for a team, newest first.
func (r *repository) ListByTeamAndCreator(ctx context.Context, teamID, creatorID string) ([]model.Invite, error) {
	var invites []model.Invite
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND created_by = ?", teamID, creatorID).
		Order("created_at DESC").
		Find(&invites).Error

	if err != nil {
		r.logger.Errorw("ListByTeamAndCreator database error",
			"team_id", teamID,
			"created_by", creatorID,
			"error", err,
		)
		return nil, err
	}

	if invites == nil {
		invites = []model.Invite{}
	}

	return invites, nil
}

// DecrementUses decrements uses_remaining atomically. The conditional update
// is what closes the concurrent-redemption race: of two racers the second
// matches zero rows and sees ErrInviteExhausted.
func (r *repository) DecrementUses(ctx context.Context, inviteID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Invite{}).
		Where("id = ? AND uses_remaining > 0", inviteID).
		UpdateColumn("uses_remaining", gorm.Expr("uses_remaining - 1"))

	if result.Error != nil {
		r.logger.Errorw("DecrementUses database error", "invite_id", inviteID, "error", result.Error)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return model.ErrInviteExhausted
	}

	return nil
}

// Delete removes an invite row.
func (r *repository) Delete(ctx context.Context, inviteID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", inviteID).
		Delete(&model.Invite{})

	if result.Error != nil {
		r.logger.Errorw("Delete database error", "invite_id", inviteID, "error", result.Error)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return model.ErrInviteNotFound
	}

	return nil
}
