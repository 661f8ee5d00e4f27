package errors

import "errors"

var (
	// ErrInvalidSessionInput rejects verify/present/submit calls with blank or
	// malformed fields.
	ErrInvalidSessionInput = errors.New("invalid session input")
	// ErrInvalidCredentials covers both an unknown participant code and a
	// wrong secret so the kiosk cannot probe the roster.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound means the token does not map to a live session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired means the idle timeout elapsed; the kiosk must verify
	// again.
	ErrSessionExpired = errors.New("session expired")
	// ErrSessionStateConflict rejects an operation the current session state
	// does not allow.
	ErrSessionStateConflict = errors.New("session state conflict")
	// ErrNoEligibleElection means verification succeeded but the kiosk offers
	// no election the participant can still vote in.
	ErrNoEligibleElection = errors.New("no eligible election")

	// ErrAlreadyVoted enforces one ballot per participant per election.
	ErrAlreadyVoted = errors.New("already voted")
	// ErrNotEligible rejects a submission when the participant no longer
	// clears the election's attendance minimum.
	ErrNotEligible = errors.New("not eligible")
	// ErrAbstentionNotAllowed rejects an abstain submission for an election
	// configured without that option.
	ErrAbstentionNotAllowed = errors.New("abstention not allowed")
	// ErrEmptySelection rejects a non-abstain submission with no candidates.
	ErrEmptySelection = errors.New("empty selection")
	// ErrTooManySelections rejects a submission with more candidates than the
	// election has seats.
	ErrTooManySelections = errors.New("too many selections")
	// ErrUnknownCandidate rejects a candidate not assigned to the election.
	ErrUnknownCandidate = errors.New("unknown candidate")
	// ErrDuplicateSelection rejects a submission naming the same candidate
	// twice.
	ErrDuplicateSelection = errors.New("duplicate selection")
	// ErrElectionNotPresented rejects a submission for an election missing
	// from the session snapshot.
	ErrElectionNotPresented = errors.New("election not presented")

	// ErrOutboxConflict signals an outbox or dedup row mismatch in the store.
	ErrOutboxConflict = errors.New("outbox conflict")
)
