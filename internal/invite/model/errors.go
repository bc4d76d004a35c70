package model

import "errors"

var (
	// ErrInviteNotFound indicates that no invite matches the given code or id.
	ErrInviteNotFound = errors.New("invite not found")
	// ErrInviteExpired indicates that the invite's expiry is in the past.
	ErrInviteExpired = errors.New("invite has expired")
	// ErrInviteExhausted indicates that a limited invite has no uses left.
	ErrInviteExhausted = errors.New("invite has no uses remaining")
	// ErrActiveInviteExists indicates that the creator already has an active
	// invite for this team.
	ErrActiveInviteExists = errors.New("an active invite already exists for this team")
	// ErrNotInviteCreator indicates that the caller did not create the invite.
	ErrNotInviteCreator = errors.New("only the invite creator may delete it")
	// ErrNotTeamMember indicates that the caller is not a member of the team.
	ErrNotTeamMember = errors.New("user is not a member of this team")
	// ErrMissingTeamID indicates that the required team id is absent.
	ErrMissingTeamID = errors.New("team_id is required")
	// ErrInvalidUsesRemaining indicates a non-positive uses bound.
	ErrInvalidUsesRemaining = errors.New("uses_remaining must be positive")
	// ErrInvalidExpiry indicates a non-positive expiry window.
	ErrInvalidExpiry = errors.New("expires_in_days must be positive")
)
