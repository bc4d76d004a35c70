package model

import "errors"

var (
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidTeamID indicates that the provided team id is invalid (e.g. empty).
	ErrInvalidTeamID = errors.New("invalid team id")
)
