package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when the referenced
	// entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrReactionTypeInactive is returned when a reaction targets a
	// type that exists but has been deactivated.
	ErrReactionTypeInactive = errors.New("reaction type is inactive")
)
