package ports

import (
	"context"
	"time"

	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/domain/entities"
)

type RegistryRepository interface {
	SaveElection(ctx context.Context, election entities.Election) error
	GetElection(ctx context.Context, electionID string) (entities.Election, error)
	ListElections(ctx context.Context) ([]entities.Election, error)

	SaveCandidate(ctx context.Context, candidate entities.Candidate) error
	GetCandidate(ctx context.Context, candidateID string) (entities.Candidate, error)
	GetCandidateByOfficePosition(ctx context.Context, office entities.OfficeKind, position int) (entities.Candidate, bool, error)
	AssignCandidate(ctx context.Context, electionID string, candidateID string) error
	ListElectionCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error)

	SaveKiosk(ctx context.Context, kiosk entities.Kiosk) error
	GetKiosk(ctx context.Context, kioskID string) (entities.Kiosk, error)
	BindKiosk(ctx context.Context, kioskID string, electionID string) error
	ListKioskElections(ctx context.Context, kioskID string) ([]entities.Election, error)
}

// BallotCounter reports how many ballots exist for an election. The registry
// uses it to freeze election configuration once voting has started.
type BallotCounter interface {
	CountBallots(ctx context.Context, electionID string) (int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
