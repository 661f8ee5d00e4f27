package errors

import "errors"

var (
	// ErrInvalidResultsInput rejects blank identifiers on result queries.
	ErrInvalidResultsInput = errors.New("invalid results input")
	// ErrElectionNotFound means the requested election does not exist.
	ErrElectionNotFound = errors.New("election not found")
)
