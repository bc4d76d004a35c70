// Package model provides domain models and DTOs for profile module.
package model

// CurrentTeam describes the caller's team in the /me response.
type CurrentTeam struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	ContributionPoints int64  `json:"contribution_points"`
	IsOwner            bool   `json:"is_owner"`
}

// MeResponse represents the response for the authenticated profile view.
type MeResponse struct {
	UserID      string       `json:"user_id"`
	DisplayName string       `json:"display_name"`
	Team        *CurrentTeam `json:"team,omitempty"`
}
