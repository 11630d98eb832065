package entities

import "errors"

// Domain errors
var (
	ErrEmailNotPending = errors.New("email is not pending")
)
