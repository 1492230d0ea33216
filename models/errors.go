package models

import "errors"

var (
	// ErrInvalidChange is returned when a change fails structural validation.
	ErrInvalidChange = errors.New("invalid sync change")

	// ErrConflictMismatch is returned when a conflict is built from changes to
	// different records.
	ErrConflictMismatch = errors.New("conflicting changes reference different records")

	ErrInvalidResolution = errors.New("invalid conflict resolution")

	ErrUnknownValueKind = errors.New("unknown value kind")
)
