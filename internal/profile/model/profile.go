package model

// Profile represents a user profile entity in the system.
// Matches the profiles table schema. Profiles are written by the auth
// provider's signup hook; this service only reads them.
type Profile struct {
	ID          string `gorm:"primaryKey;column:id;type:uuid"            json:"id"`
	DisplayName string `gorm:"column:display_name;type:varchar(255)"    json:"display_name"`
}

// TableName specifies the table name for GORM.
func (Profile) TableName() string {
	return "profiles"
}
