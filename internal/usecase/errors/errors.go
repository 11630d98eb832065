package errors

import "errors"

// Report input errors
var (
	ErrMissingMeetingRef = errors.New("Either 'meeting_id' or 'user_email' must be provided.")
	ErrMissingUserEmail  = errors.New("'user_email' is required.")
)
