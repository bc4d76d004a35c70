package model

import "time"

// Invite represents a shareable, code-keyed grant of team membership.
// Matches the invites table schema. Expiry is a read-time filter: expired
// rows stay stored and are ignored by queries, never flipped to a stored
// status.
type Invite struct {
	ID        string `gorm:"primaryKey;column:id;type:uuid"                                               json:"id"`
	TeamID    string `gorm:"column:team_id;type:uuid;not null;index:idx_invites_team_creator,priority:1"  json:"team_id"`
	CreatedBy string `gorm:"column:created_by;type:uuid;not null;index:idx_invites_team_creator,priority:2" json:"created_by"`
	Code      string `gorm:"column:code;type:varchar(32);not null;uniqueIndex:uq_invites_code"            json:"code"`
	// UsesRemaining is nil for unlimited invites.
	UsesRemaining *int `gorm:"column:uses_remaining" json:"uses_remaining,omitempty"`
	// ExpiresAt is nil for invites that never expire.
	ExpiresAt *time.Time `gorm:"column:expires_at;type:timestamptz"                        json:"expires_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Invite) TableName() string {
	return "invites"
}

// IsExpired reports whether the invite is past its expiry at the given time.
func (i *Invite) IsExpired(now time.Time) bool {
	return i.ExpiresAt != nil && i.ExpiresAt.Before(now)
}

// IsExhausted reports whether a limited invite has no uses left.
func (i *Invite) IsExhausted() bool {
	return i.UsesRemaining != nil && *i.UsesRemaining <= 0
}
