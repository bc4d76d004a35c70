// Package model provides domain models and DTOs for team module.
package model

// TeamMember represents a team member in API responses.
type TeamMember struct {
	UserID             string `json:"user_id"`
	DisplayName        string `json:"display_name"`
	ContributionPoints int64  `json:"contribution_points"`
}

// TeamResponse represents the response for getting a team with its members.
type TeamResponse struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Members []TeamMember `json:"members"`
}
