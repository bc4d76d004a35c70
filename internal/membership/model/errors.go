package model

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyMember indicates that the caller already belongs to the
	// invite's team; nothing is mutated.
	ErrAlreadyMember = errors.New("user is already a member of this team")
	// ErrMembershipNotFound indicates that the user has no team.
	ErrMembershipNotFound = errors.New("membership not found")
	// ErrOwnerCannotLeave indicates that a team owner tried to leave the
	// team they created. The team must be deleted first.
	ErrOwnerCannotLeave = errors.New("team owner cannot leave the team")
)

// ConfirmationRequiredError is returned when the caller belongs to a
// different team and has not confirmed the switch. It is a protocol branch,
// not a hard failure: the client re-invokes with confirm_switch set.
type ConfirmationRequiredError struct {
	CurrentTeamID   string
	CurrentTeamName string
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("switch confirmation required: user is a member of team %s", e.CurrentTeamID)
}

// OwnerCannotSwitchError is returned when the caller owns their current team.
// Owners must delete the owned team before joining another one.
type OwnerCannotSwitchError struct {
	OwnedTeamID   string
	OwnedTeamName string
}

func (e *OwnerCannotSwitchError) Error() string {
	return fmt.Sprintf("owner of team %s cannot switch teams", e.OwnedTeamID)
}
