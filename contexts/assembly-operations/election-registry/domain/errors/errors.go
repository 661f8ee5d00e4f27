package errors

import "errors"

var (
	ErrInvalidElectionInput     = errors.New("invalid election input")
	ErrInvalidCandidateInput    = errors.New("invalid candidate input")
	ErrInvalidKioskInput        = errors.New("invalid kiosk input")
	ErrElectionNotFound         = errors.New("election not found")
	ErrCandidateNotFound        = errors.New("candidate not found")
	ErrKioskNotFound            = errors.New("kiosk not found")
	ErrElectionLocked           = errors.New("election configuration is locked after the first ballot")
	ErrUnknownOffice            = errors.New("unknown office kind")
	ErrDuplicateBallotPosition  = errors.New("ballot position already taken within office")
	ErrCandidateAlreadyAssigned = errors.New("candidate already assigned to election")
	ErrKioskAlreadyBound        = errors.New("kiosk already bound to election")
)
