// Package repository provides data access layer for profile module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/idleforest/team-service/internal/profile/model"
)

// Repository defines the interface for profile data access operations.
type Repository interface {
	// GetByID finds a profile by user id.
	GetByID(ctx context.Context, userID string) (*model.Profile, error)

	// DisplayName returns the display name for a user, or an empty string
	// if no profile exists.
	DisplayName(ctx context.Context, userID string) (string, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new profile repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetByID finds a profile by user id.
func (r *repository) GetByID(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&profile).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProfileNotFound
		}
		r.logger.Errorw("GetByID database error", "user_id", userID, "error", err)
		return nil, err
	}

	return &profile, nil
}

// DisplayName returns the display name for a user, or an empty string if no
// profile exists.
func (r *repository) DisplayName(ctx context.Context, userID string) (string, error) {
	profile, err := r.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			return "", nil
		}
		return "", err
	}
	return profile.DisplayName, nil
}
