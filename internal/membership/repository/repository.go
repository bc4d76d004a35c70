// Package repository provides data access layer for membership module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/idleforest/team-service/internal/membership/model"
)

// Repository defines the interface for membership data access operations.
type Repository interface {
	// GetByUserID returns the user's membership. By invariant a user has at
	// most one row; absence is reported as ErrMembershipNotFound.
	GetByUserID(ctx context.Context, userID string) (*model.Membership, error)

	// Insert creates a membership with zero contribution points.
	Insert(ctx context.Context, teamID, userID string) (*model.Membership, error)

	// Delete removes a membership row.
	Delete(ctx context.Context, membershipID string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new membership repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetByUserID returns the user's membership.
func (r *repository) GetByUserID(ctx context.Context, userID string) (*model.Membership, error) {
	var membership model.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&membership).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrMembershipNotFound
		}
		r.logger.Errorw("GetByUserID database error", "user_id", userID, "error", err)
		return nil, err
	}

	return &membership, nil
}

// Insert creates a membership with zero contribution points. A losing racer
// in a concurrent double-join hits the unique index on user_id and gets
// ErrAlreadyMember.
func (r *repository) Insert(ctx context.Context, teamID, userID string) (*model.Membership, error) {
	membership := &model.Membership{
		ID:                 uuid.NewString(),
		TeamID:             teamID,
		UserID:             userID,
		ContributionPoints: 0,
		CreatedAt:          time.Now(),
	}

	err := r.db.WithContext(ctx).Create(membership).Error
	if err != nil {
		if isDuplicateError(err) {
			return nil, model.ErrAlreadyMember
		}
		r.logger.Errorw("Insert database error", "team_id", teamID, "user_id", userID, "error", err)
		return nil, err
	}

	return membership, nil
}

// Delete removes a membership row.
func (r *repository) Delete(ctx context.Context, membershipID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", membershipID).
		Delete(&model.Membership{})

	if result.Error != nil {
		r.logger.Errorw("Delete database error", "membership_id", membershipID, "error", result.Error)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return model.ErrMembershipNotFound
	}

	return nil
}

// isDuplicateError checks if error is a unique constraint violation.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint")
}
