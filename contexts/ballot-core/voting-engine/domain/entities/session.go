package entities

import (
	"strings"
	"time"
)

// SessionState is the lifecycle state of a kiosk voting session.
type SessionState string

const (
	// SessionVerified means credentials were accepted but ballots were not
	// presented yet.
	SessionVerified SessionState = "verified"
	// SessionBallotsPresented means the eligible election set was computed and
	// shown; ballot submission is allowed in this state only.
	SessionBallotsPresented SessionState = "ballots_presented"
	// SessionClosed means the participant finished voting or logged out.
	SessionClosed SessionState = "closed"
	// SessionExpired means the idle timeout elapsed before the session closed.
	SessionExpired SessionState = "expired"
)

// ElectionAccessStatus says how a single election appears inside a session.
type ElectionAccessStatus string

const (
	ElectionAccessOpen         ElectionAccessStatus = "open"
	ElectionAccessAlreadyVoted ElectionAccessStatus = "already_voted"
	ElectionAccessIneligible   ElectionAccessStatus = "ineligible"
)

// ElectionAccess is the per-election slice of a session snapshot. Seats and
// AbstentionAllowed are frozen at presentation time so the kiosk renders the
// same rules the submit path enforces.
type ElectionAccess struct {
	ElectionID        string               `json:"election_id"`
	Name              string               `json:"name"`
	Seats             int                  `json:"seats"`
	AbstentionAllowed bool                 `json:"abstention_allowed"`
	MinimumAttendance int                  `json:"minimum_attendance"`
	Status            ElectionAccessStatus `json:"status"`
}

// VotingSession is the server-side record behind one kiosk token. The token is
// the only credential the kiosk holds after verification.
type VotingSession struct {
	Token         string
	ParticipantID string
	KioskID       string
	State         SessionState
	Elections     []ElectionAccess
	CreatedAt     time.Time
	LastSeenAt    time.Time
	ExpiresAt     time.Time
}

// NewVotingSession starts a session in the verified state with an idle
// deadline of now+timeout.
func NewVotingSession(token string, participantID string, kioskID string, now time.Time, timeout time.Duration) VotingSession {
	now = now.UTC()
	return VotingSession{
		Token:         strings.TrimSpace(token),
		ParticipantID: strings.TrimSpace(participantID),
		KioskID:       strings.TrimSpace(kioskID),
		State:         SessionVerified,
		CreatedAt:     now,
		LastSeenAt:    now,
		ExpiresAt:     now.Add(timeout),
	}
}

// IdleExpired reports whether the idle deadline passed. Closed sessions never
// flip to expired.
func (s VotingSession) IdleExpired(now time.Time) bool {
	if s.State == SessionClosed || s.State == SessionExpired {
		return s.State == SessionExpired
	}
	return now.UTC().After(s.ExpiresAt.UTC())
}

// Touch slides the idle deadline forward on participant activity.
func (s *VotingSession) Touch(now time.Time, timeout time.Duration) {
	s.LastSeenAt = now.UTC()
	s.ExpiresAt = now.UTC().Add(timeout)
}

// PresentBallots installs the computed access snapshot and moves the session
// into the ballots-presented state. Re-presenting refreshes the snapshot; a
// closed or expired session cannot present.
func (s *VotingSession) PresentBallots(accesses []ElectionAccess, now time.Time) bool {
	if s.State != SessionVerified && s.State != SessionBallotsPresented {
		return false
	}
	s.Elections = accesses
	s.State = SessionBallotsPresented
	s.LastSeenAt = now.UTC()
	return true
}

// Close ends the session. Closing is idempotent.
func (s *VotingSession) Close(now time.Time) {
	s.State = SessionClosed
	s.LastSeenAt = now.UTC()
}

// Expire marks the session expired after its idle deadline passed.
func (s *VotingSession) Expire(now time.Time) {
	if s.State == SessionClosed {
		return
	}
	s.State = SessionExpired
	s.LastSeenAt = now.UTC()
}

// AccessFor returns the snapshot entry for an election, if the election was
// presented in this session.
func (s VotingSession) AccessFor(electionID string) (ElectionAccess, bool) {
	for _, access := range s.Elections {
		if access.ElectionID == strings.TrimSpace(electionID) {
			return access, true
		}
	}
	return ElectionAccess{}, false
}

// SetAccessStatus rewrites the snapshot status for one election.
func (s *VotingSession) SetAccessStatus(electionID string, status ElectionAccessStatus) {
	for i := range s.Elections {
		if s.Elections[i].ElectionID == electionID {
			s.Elections[i].Status = status
			return
		}
	}
}

// OpenElectionCount counts snapshot entries the participant may still vote in.
func (s VotingSession) OpenElectionCount() int {
	open := 0
	for _, access := range s.Elections {
		if access.Status == ElectionAccessOpen {
			open++
		}
	}
	return open
}
