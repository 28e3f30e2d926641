package schedule

import "errors"

var (
	// ErrConfigNotFound is fatal for the check-in/out workflow: nothing
	// proceeds without shift configuration.
	ErrConfigNotFound = errors.New("no shift configuration found for company")
)
