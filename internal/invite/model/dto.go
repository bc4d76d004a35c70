// Package model provides domain models and DTOs for invite module.
package model

import "time"

// CreateInviteRequest represents the request to create an invite.
type CreateInviteRequest struct {
	TeamID string `json:"team_id" binding:"required"`
	// UsesRemaining bounds the number of redemptions; nil means unlimited.
	UsesRemaining *int `json:"uses_remaining,omitempty"`
	// ExpiresInDays sets the expiry relative to now; nil means never.
	ExpiresInDays *int `json:"expires_in_days,omitempty"`
}

// InviteStats carries best-effort redemption counts for an invite.
type InviteStats struct {
	Redemptions int64 `json:"redemptions"`
	NewSignups  int64 `json:"new_signups"`
}

// InviteResponse represents an invite in API responses.
type InviteResponse struct {
	ID            string     `json:"id"`
	TeamID        string     `json:"team_id"`
	Code          string     `json:"code"`
	ShareURL      string     `json:"share_url"`
	UsesRemaining *int       `json:"uses_remaining,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	// Stats is omitted when the analytics enrichment fails.
	Stats *InviteStats `json:"stats,omitempty"`
}

// ListInvitesResponse represents the caller's invites for a team.
type ListInvitesResponse struct {
	Invites []InviteResponse `json:"invites"`
}

// InviteDetailsResponse represents the public invite landing view.
type InviteDetailsResponse struct {
	Code        string     `json:"code"`
	TeamID      string     `json:"team_id"`
	TeamName    string     `json:"team_name"`
	MemberCount int64      `json:"member_count"`
	InviterName string     `json:"inviter_name,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}
