package model

import "time"

// Membership represents the record binding a user to a team.
// Matches the team_members table schema. The unique index on user_id is the
// storage-level guarantee that a user belongs to at most one team.
type Membership struct {
	ID                 string    `gorm:"primaryKey;column:id;type:uuid"                                    json:"id"`
	TeamID             string    `gorm:"column:team_id;type:uuid;not null;index:idx_team_members_team_id"  json:"team_id"`
	UserID             string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_team_members_user" json:"user_id"`
	ContributionPoints int64     `gorm:"column:contribution_points;type:bigint;not null;default:0"         json:"contribution_points"`
	CreatedAt          time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"         json:"-"`
}

// TableName specifies the table name for GORM.
func (Membership) TableName() string {
	return "team_members"
}
