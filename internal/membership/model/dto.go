// Package model provides domain models and DTOs for membership module.
package model

import "time"

// JoinRequest represents the request to redeem an invite code.
type JoinRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
	// ConfirmSwitch must be set when the caller already belongs to another
	// team and wants to switch.
	ConfirmSwitch bool `json:"confirm_switch"`
	// IsNewSignup marks redemptions performed right after registration so
	// the usage analytics can attribute new signups to invites.
	IsNewSignup bool `json:"is_new_signup"`
}

// JoinedTeam identifies the team a join landed in.
type JoinedTeam struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JoinResponse represents a successful join.
type JoinResponse struct {
	Status string     `json:"status"`
	Team   JoinedTeam `json:"team"`
}

// JoinStatusJoined is the status value of a successful join.
const JoinStatusJoined = "joined"

// MembershipResponse represents the caller's current membership.
type MembershipResponse struct {
	TeamID             string    `json:"team_id"`
	TeamName           string    `json:"team_name"`
	ContributionPoints int64     `json:"contribution_points"`
	JoinedAt           time.Time `json:"joined_at"`
}
