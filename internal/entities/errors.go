// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidInputSize signals a roster of the wrong size at balance time.
	ErrInvalidInputSize = errors.New("invalid input size")
	// ErrSessionNotFound signals missing session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrPlayerNotFound signals a roster index out of range.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrRosterFull signals an add attempt on a complete roster.
	ErrRosterFull = errors.New("roster full")
	// ErrInvalidShareData signals a malformed or inconsistent view link.
	ErrInvalidShareData = errors.New("invalid share data")
)
