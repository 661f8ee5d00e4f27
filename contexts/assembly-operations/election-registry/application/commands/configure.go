package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/application"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/domain/entities"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/domain/errors"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/ports"
)

type CreateElectionCommand struct {
	Name              string
	MinimumAttendance int
	Seats             int
	AbstentionAllowed bool
}

type UpdateElectionCommand struct {
	ElectionID        string
	Name              string
	MinimumAttendance int
	Seats             int
	AbstentionAllowed bool
}

type RegisterCandidateCommand struct {
	Name           string
	Chapter        string
	Office         string
	BallotPosition int
}

type CreateKioskCommand struct {
	Name     string
	Username string
}

// RegistryUseCase owns election, candidate, and kiosk configuration. Writes
// are admin-paced; the single hard rule it enforces is that an election's
// configuration is immutable once its first ballot exists.
type RegistryUseCase struct {
	Repository ports.RegistryRepository
	Ballots    ports.BallotCounter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc RegistryUseCase) CreateElection(ctx context.Context, cmd CreateElectionCommand) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.Name) == "" || cmd.MinimumAttendance < 0 || cmd.Seats < 1 {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}
	electionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Election{}, err
	}
	now := uc.now()
	election := entities.Election{
		ElectionID:        electionID,
		Name:              strings.TrimSpace(cmd.Name),
		MinimumAttendance: cmd.MinimumAttendance,
		Seats:             cmd.Seats,
		AbstentionAllowed: cmd.AbstentionAllowed,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.Repository.SaveElection(ctx, election); err != nil {
		return entities.Election{}, err
	}
	logger.Info("election created",
		"event", "registry_election_created",
		"module", "assembly-operations/election-registry",
		"layer", "application",
		"election_id", election.ElectionID,
		"seats", election.Seats,
		"minimum_attendance", election.MinimumAttendance,
	)
	return election, nil
}

// UpdateElection rejects configuration changes once any ballot exists for the
// election. Mutating seats or the abstention policy mid-vote would make cast
// ballots retroactively invalid, so the check is hard, not advisory.
func (uc RegistryUseCase) UpdateElection(ctx context.Context, cmd UpdateElectionCommand) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.Name) == "" || cmd.MinimumAttendance < 0 || cmd.Seats < 1 {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}
	election, err := uc.Repository.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return entities.Election{}, err
	}
	cast, err := uc.Ballots.CountBallots(ctx, election.ElectionID)
	if err != nil {
		return entities.Election{}, err
	}
	if cast > 0 {
		logger.Warn("election update rejected after first ballot",
			"event", "registry_election_update_locked",
			"module", "assembly-operations/election-registry",
			"layer", "application",
			"election_id", election.ElectionID,
			"ballot_count", cast,
		)
		return entities.Election{}, domainerrors.ErrElectionLocked
	}

	election.Name = strings.TrimSpace(cmd.Name)
	election.MinimumAttendance = cmd.MinimumAttendance
	election.Seats = cmd.Seats
	election.AbstentionAllowed = cmd.AbstentionAllowed
	election.UpdatedAt = uc.now()
	if err := uc.Repository.SaveElection(ctx, election); err != nil {
		return entities.Election{}, err
	}
	logger.Info("election updated",
		"event", "registry_election_updated",
		"module", "assembly-operations/election-registry",
		"layer", "application",
		"election_id", election.ElectionID,
	)
	return election, nil
}

func (uc RegistryUseCase) RegisterCandidate(ctx context.Context, cmd RegisterCandidateCommand) (entities.Candidate, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.Name) == "" || cmd.BallotPosition < 1 {
		return entities.Candidate{}, domainerrors.ErrInvalidCandidateInput
	}
	office, ok := entities.ParseOfficeKind(strings.ToLower(strings.TrimSpace(cmd.Office)))
	if !ok {
		return entities.Candidate{}, domainerrors.ErrUnknownOffice
	}
	if _, taken, err := uc.Repository.GetCandidateByOfficePosition(ctx, office, cmd.BallotPosition); err != nil {
		return entities.Candidate{}, err
	} else if taken {
		return entities.Candidate{}, domainerrors.ErrDuplicateBallotPosition
	}

	candidateID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Candidate{}, err
	}
	now := uc.now()
	candidate := entities.Candidate{
		CandidateID:    candidateID,
		Name:           strings.TrimSpace(cmd.Name),
		Chapter:        strings.TrimSpace(cmd.Chapter),
		Office:         office,
		BallotPosition: cmd.BallotPosition,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.Repository.SaveCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}
	logger.Info("candidate registered",
		"event", "registry_candidate_registered",
		"module", "assembly-operations/election-registry",
		"layer", "application",
		"candidate_id", candidate.CandidateID,
		"office", string(candidate.Office),
		"ballot_position", candidate.BallotPosition,
	)
	return candidate, nil
}

// AssignCandidate binds a candidate to an election ballot. Assignments are
// frozen together with the rest of the configuration once voting starts.
func (uc RegistryUseCase) AssignCandidate(ctx context.Context, electionID string, candidateID string) error {
	election, err := uc.Repository.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return err
	}
	if _, err := uc.Repository.GetCandidate(ctx, strings.TrimSpace(candidateID)); err != nil {
		return err
	}
	cast, err := uc.Ballots.CountBallots(ctx, election.ElectionID)
	if err != nil {
		return err
	}
	if cast > 0 {
		return domainerrors.ErrElectionLocked
	}
	return uc.Repository.AssignCandidate(ctx, election.ElectionID, strings.TrimSpace(candidateID))
}

func (uc RegistryUseCase) CreateKiosk(ctx context.Context, cmd CreateKioskCommand) (entities.Kiosk, error) {
	if strings.TrimSpace(cmd.Name) == "" || strings.TrimSpace(cmd.Username) == "" {
		return entities.Kiosk{}, domainerrors.ErrInvalidKioskInput
	}
	kioskID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Kiosk{}, err
	}
	now := uc.now()
	kiosk := entities.Kiosk{
		KioskID:   kioskID,
		Name:      strings.TrimSpace(cmd.Name),
		Username:  strings.TrimSpace(cmd.Username),
		Status:    entities.KioskStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.Repository.SaveKiosk(ctx, kiosk); err != nil {
		return entities.Kiosk{}, err
	}
	return kiosk, nil
}

func (uc RegistryUseCase) BindKiosk(ctx context.Context, kioskID string, electionID string) error {
	if _, err := uc.Repository.GetKiosk(ctx, strings.TrimSpace(kioskID)); err != nil {
		return err
	}
	if _, err := uc.Repository.GetElection(ctx, strings.TrimSpace(electionID)); err != nil {
		return err
	}
	return uc.Repository.BindKiosk(ctx, strings.TrimSpace(kioskID), strings.TrimSpace(electionID))
}

func (uc RegistryUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
