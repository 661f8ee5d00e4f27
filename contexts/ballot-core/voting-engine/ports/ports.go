package ports

import (
	"context"
	"time"

	contractsv1 "github.com/cihuyyama/Musyavote/contracts/gen/events/v1"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/domain/entities"
)

// SessionStore keeps live kiosk sessions keyed by token.
type SessionStore interface {
	PutSession(ctx context.Context, session entities.VotingSession) error
	GetSession(ctx context.Context, token string) (entities.VotingSession, bool, error)
	DeleteSession(ctx context.Context, token string) error
	// ListIdleSessions returns sessions whose idle deadline passed before now,
	// oldest first, for the sweeper.
	ListIdleSessions(ctx context.Context, now time.Time, limit int) ([]entities.VotingSession, error)
}

// BallotRepository persists cast ballots. InsertBallot must map a
// (participant_id, election_id) uniqueness violation to
// domainerrors.ErrAlreadyVoted.
type BallotRepository interface {
	InsertBallot(ctx context.Context, ballot entities.Ballot) error
	HasBallot(ctx context.Context, participantID string, electionID string) (bool, error)
	ListBallotsByParticipant(ctx context.Context, participantID string) ([]entities.Ballot, error)
	ListBallotsByElection(ctx context.Context, electionID string) ([]entities.Ballot, error)
	CountBallots(ctx context.Context, electionID string) (int, error)
}

// ParticipantRecord is the read-only slice of the attendance roster the
// voting engine needs for verification and eligibility.
type ParticipantRecord struct {
	ParticipantID     string
	Code              string
	Name              string
	Chapter           string
	Status            string
	SecretHash        string
	AttendanceCredits int
}

// ElectionRecord is the read-only slice of registry configuration the voting
// engine needs to gate and validate ballots.
type ElectionRecord struct {
	ElectionID        string
	Name              string
	MinimumAttendance int
	Seats             int
	AbstentionAllowed bool
}

// DirectoryReader projects attendance and registry state into the voting
// engine without importing those modules.
type DirectoryReader interface {
	GetParticipantByCode(ctx context.Context, code string) (ParticipantRecord, bool, error)
	GetParticipant(ctx context.Context, participantID string) (ParticipantRecord, bool, error)
	ListKioskElections(ctx context.Context, kioskID string) ([]ElectionRecord, error)
	GetElection(ctx context.Context, electionID string) (ElectionRecord, bool, error)
	ListElectionCandidateIDs(ctx context.Context, electionID string) ([]string, error)
}

// SecretVerifier checks a plaintext kiosk secret against a stored hash.
type SecretVerifier interface {
	Compare(hash string, secret string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
