package ports

import (
	"context"
	"time"
)

// ElectionInfo is the registry projection the results module reads.
type ElectionInfo struct {
	ElectionID        string
	Name              string
	MinimumAttendance int
	Seats             int
	AbstentionAllowed bool
}

// CandidateInfo carries the fields a tally line needs, including the ballot
// position used as the deterministic tie-break.
type CandidateInfo struct {
	CandidateID    string
	Name           string
	Chapter        string
	Office         string
	BallotPosition int
}

// BallotRecord is the cast-ballot projection; candidate choices stay inside
// the results module and never cross its HTTP surface per participant.
type BallotRecord struct {
	BallotID      string
	ParticipantID string
	CandidateIDs  []string
	Abstained     bool
	CastAt        time.Time
}

// ResultsReader projects registry, ballot, and roster state into the results
// module read-only.
type ResultsReader interface {
	GetElection(ctx context.Context, electionID string) (ElectionInfo, bool, error)
	ListElections(ctx context.Context) ([]ElectionInfo, error)
	ListElectionCandidates(ctx context.Context, electionID string) ([]CandidateInfo, error)
	ListElectionBallots(ctx context.Context, electionID string) ([]BallotRecord, error)
	CountParticipants(ctx context.Context) (int, error)
}
