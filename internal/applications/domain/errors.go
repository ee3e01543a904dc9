package domain

import "errors"

var (
	// ErrUnauthenticated means no user identity could be resolved for the call.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrDuplicatePending means the user already has a pending application.
	// Only pending blocks resubmission; rejected or accepted history does not.
	ErrDuplicatePending = errors.New("you already have a pending application")
)
