// Package repository provides data access layer for analytics module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/idleforest/team-service/internal/analytics/model"
)

// Repository defines the interface for analytics data access operations.
type Repository interface {
	// Insert appends an invite redemption record.
	Insert(ctx context.Context, use *model.InviteUse) error

	// StatsForInvites returns aggregated redemption counts keyed by invite id.
	// Invites with no redemptions are absent from the result.
	StatsForInvites(ctx context.Context, inviteIDs []string) (map[string]model.InviteUsageStats, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new analytics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Insert appends an invite redemption record.
func (r *repository) Insert(ctx context.Context, use *model.InviteUse) error {
	err := r.db.WithContext(ctx).Create(use).Error
	if err != nil {
		r.logger.Errorw("Insert database error", "invite_id", use.InviteID, "error", err)
		return err
	}
	return nil
}

// StatsForInvites returns aggregated redemption counts keyed by invite id.
func (r *repository) StatsForInvites(ctx context.Context, inviteIDs []string) (map[string]model.InviteUsageStats, error) {
	stats := make(map[string]model.InviteUsageStats, len(inviteIDs))
	if len(inviteIDs) == 0 {
		return stats, nil
	}

	var rows []model.InviteUsageStats
	err := r.db.WithContext(ctx).
		Table("invite_uses").
		Select(`
			invite_id,
			COUNT(*) as redemptions,
			SUM(CASE WHEN is_new_signup THEN 1 ELSE 0 END) as new_signups
		`).
		Where("invite_id IN ?", inviteIDs).
		Group("invite_id").
		Scan(&rows).Error

	if err != nil {
		r.logger.Errorw("StatsForInvites database error", "invite_count", len(inviteIDs), "error", err)
		return nil, err
	}

	for _, row := range rows {
		stats[row.InviteID] = row
	}

	return stats, nil
}
