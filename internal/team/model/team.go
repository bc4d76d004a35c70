package model

import "time"

// Team represents a team entity in the system.
// Matches the teams table schema. Teams are created and deleted by the
// dashboard product surface; this service only reads them.
type Team struct {
	ID        string    `gorm:"primaryKey;column:id;type:uuid"                            json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"                    json:"name"`
	CreatedBy string    `gorm:"column:created_by;type:uuid;not null"                      json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// IsOwnedBy reports whether userID created this team.
func (t *Team) IsOwnedBy(userID string) bool {
	return t.CreatedBy == userID
}
