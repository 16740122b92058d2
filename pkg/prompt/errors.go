package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrInvalid is returned when the submission is still invalid after the
	// last allowed attempt.
	ErrInvalid = errors.New("prompt: submission still invalid")
)
