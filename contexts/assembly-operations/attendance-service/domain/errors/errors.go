package errors

import "errors"

var (
	ErrInvalidParticipantInput = errors.New("invalid participant input")
	ErrParticipantNotFound     = errors.New("participant not found")
	ErrDuplicateCode           = errors.New("participant code already registered")
	ErrInvalidPleno            = errors.New("pleno index out of range")
)
