// Package model provides domain models and DTOs for analytics module.
package model

import "time"

// InviteUse represents a single invite redemption.
// Matches the invite_uses table schema. Rows are append-only; this service
// never updates or deletes them.
type InviteUse struct {
	ID          string    `gorm:"primaryKey;column:id;type:uuid"                                      json:"id"`
	InviteID    string    `gorm:"column:invite_id;type:uuid;not null;index:idx_invite_uses_invite_id" json:"invite_id"`
	UserID      string    `gorm:"column:user_id;type:uuid;not null"                                   json:"user_id"`
	TeamID      string    `gorm:"column:team_id;type:uuid;not null"                                   json:"team_id"`
	IsNewSignup bool      `gorm:"column:is_new_signup;not null;default:false"                         json:"is_new_signup"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"           json:"created_at"`
}

// TableName specifies the table name for GORM.
func (InviteUse) TableName() string {
	return "invite_uses"
}

// InviteUsageStats aggregates redemptions for one invite.
type InviteUsageStats struct {
	InviteID    string `json:"invite_id"`
	Redemptions int64  `json:"redemptions"`
	NewSignups  int64  `json:"new_signups"`
}
