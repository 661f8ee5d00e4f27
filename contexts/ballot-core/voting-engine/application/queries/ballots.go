package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/application"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/domain/errors"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/ports"
)

// BallotReceipt is the audit view of one cast ballot. It exposes whether and
// when a ballot exists but never the candidate choices.
type BallotReceipt struct {
	BallotID      string
	ElectionID    string
	ParticipantID string
	KioskID       string
	Abstained     bool
	CastAt        time.Time
}

// SessionView is the kiosk-facing read model of a live session.
type SessionView struct {
	Token         string
	ParticipantID string
	State         string
	Elections     []ElectionAccessView
	ExpiresAt     time.Time
}

type ElectionAccessView struct {
	ElectionID        string
	Name              string
	Seats             int
	AbstentionAllowed bool
	Status            string
}

// BallotQueryUseCase serves session and ballot reads for kiosks and
// committee audit.
type BallotQueryUseCase struct {
	Sessions ports.SessionStore
	Ballots  ports.BallotRepository
	Logger   *slog.Logger
}

// GetSession returns the current session snapshot without touching its idle
// deadline.
func (uc BallotQueryUseCase) GetSession(ctx context.Context, token string) (SessionView, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return SessionView{}, domainerrors.ErrInvalidSessionInput
	}
	session, found, err := uc.Sessions.GetSession(ctx, token)
	if err != nil {
		application.ResolveLogger(uc.Logger).Error("session query failed",
			"event", "voting_session_query_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"error", err.Error(),
		)
		return SessionView{}, err
	}
	if !found {
		return SessionView{}, domainerrors.ErrSessionNotFound
	}
	view := SessionView{
		Token:         session.Token,
		ParticipantID: session.ParticipantID,
		State:         string(session.State),
		ExpiresAt:     session.ExpiresAt.UTC(),
		Elections:     make([]ElectionAccessView, 0, len(session.Elections)),
	}
	for _, access := range session.Elections {
		view.Elections = append(view.Elections, ElectionAccessView{
			ElectionID:        access.ElectionID,
			Name:              access.Name,
			Seats:             access.Seats,
			AbstentionAllowed: access.AbstentionAllowed,
			Status:            string(access.Status),
		})
	}
	return view, nil
}

// ParticipantReceipts lists a participant's ballots across all elections.
func (uc BallotQueryUseCase) ParticipantReceipts(ctx context.Context, participantID string) ([]BallotReceipt, error) {
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return nil, domainerrors.ErrInvalidSessionInput
	}
	ballots, err := uc.Ballots.ListBallotsByParticipant(ctx, participantID)
	if err != nil {
		application.ResolveLogger(uc.Logger).Error("participant receipts query failed",
			"event", "voting_receipts_query_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"participant_id", participantID,
			"error", err.Error(),
		)
		return nil, err
	}
	receipts := make([]BallotReceipt, 0, len(ballots))
	for _, ballot := range ballots {
		receipts = append(receipts, BallotReceipt{
			BallotID:      ballot.BallotID,
			ElectionID:    ballot.ElectionID,
			ParticipantID: ballot.ParticipantID,
			KioskID:       ballot.KioskID,
			Abstained:     ballot.Abstained,
			CastAt:        ballot.CastAt.UTC(),
		})
	}
	return receipts, nil
}

// ElectionBallots lists an election's ballots in cast order for committee
// audit. Kiosk attribution is kept; candidate choices are not.
func (uc BallotQueryUseCase) ElectionBallots(ctx context.Context, electionID string) ([]BallotReceipt, error) {
	electionID = strings.TrimSpace(electionID)
	if electionID == "" {
		return nil, domainerrors.ErrInvalidSessionInput
	}
	ballots, err := uc.Ballots.ListBallotsByElection(ctx, electionID)
	if err != nil {
		application.ResolveLogger(uc.Logger).Error("election ballots query failed",
			"event", "voting_election_ballots_query_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"election_id", electionID,
			"error", err.Error(),
		)
		return nil, err
	}
	receipts := make([]BallotReceipt, 0, len(ballots))
	for _, ballot := range ballots {
		receipts = append(receipts, BallotReceipt{
			BallotID:      ballot.BallotID,
			ElectionID:    ballot.ElectionID,
			ParticipantID: ballot.ParticipantID,
			KioskID:       ballot.KioskID,
			Abstained:     ballot.Abstained,
			CastAt:        ballot.CastAt.UTC(),
		})
	}
	return receipts, nil
}

// ElectionBallotCount returns how many ballots an election has received.
func (uc BallotQueryUseCase) ElectionBallotCount(ctx context.Context, electionID string) (int, error) {
	electionID = strings.TrimSpace(electionID)
	if electionID == "" {
		return 0, domainerrors.ErrInvalidSessionInput
	}
	return uc.Ballots.CountBallots(ctx, electionID)
}
