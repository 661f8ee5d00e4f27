package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/application"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/domain/entities"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/domain/errors"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/ports"
)

// defaultSessionTimeout matches the kiosk idle policy: an unattended session
// dies after 30 minutes.
const defaultSessionTimeout = 30 * time.Minute

// VerifyCommand authenticates a participant at a kiosk.
type VerifyCommand struct {
	KioskID         string
	ParticipantCode string
	Secret          string
}

// PresentBallotsCommand asks for the eligible election set of a session.
type PresentBallotsCommand struct {
	Token string
}

// LogoutCommand closes a session. Logout never fails on an unknown token.
type LogoutCommand struct {
	Token string
}

// SessionUseCase drives the kiosk session lifecycle: verify credentials,
// present ballots, close. Ballot submission lives in SubmitUseCase but shares
// the same store semantics.
type SessionUseCase struct {
	Sessions       ports.SessionStore
	Ballots        ports.BallotRepository
	Directory      ports.DirectoryReader
	Verifier       ports.SecretVerifier
	Outbox         ports.OutboxWriter
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	SessionTimeout time.Duration
	Logger         *slog.Logger
}

// Verify checks participant credentials and opens a verified session bound to
// the kiosk. Unknown codes and wrong secrets collapse into one error.
func (uc SessionUseCase) Verify(ctx context.Context, cmd VerifyCommand) (entities.VotingSession, error) {
	logger := application.ResolveLogger(uc.Logger)
	kioskID := strings.TrimSpace(cmd.KioskID)
	code := strings.TrimSpace(cmd.ParticipantCode)
	logger.Info("session verify started",
		"event", "voting_session_verify_started",
		"module", "ballot-core/voting-engine",
		"layer", "application",
		"kiosk_id", kioskID,
	)
	if kioskID == "" || code == "" || cmd.Secret == "" {
		logger.Warn("session verify validation failed",
			"event", "voting_session_verify_validation_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"kiosk_id", kioskID,
		)
		return entities.VotingSession{}, domainerrors.ErrInvalidSessionInput
	}

	participant, found, err := uc.Directory.GetParticipantByCode(ctx, code)
	if err != nil {
		logger.Error("session verify directory lookup failed",
			"event", "voting_session_verify_lookup_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"kiosk_id", kioskID,
			"error", err.Error(),
		)
		return entities.VotingSession{}, err
	}
	if !found {
		logger.Warn("session verify rejected unknown code",
			"event", "voting_session_verify_rejected",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"kiosk_id", kioskID,
		)
		return entities.VotingSession{}, domainerrors.ErrInvalidCredentials
	}
	if err := uc.Verifier.Compare(participant.SecretHash, cmd.Secret); err != nil {
		logger.Warn("session verify rejected bad secret",
			"event", "voting_session_verify_rejected",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"kiosk_id", kioskID,
			"participant_id", participant.ParticipantID,
		)
		return entities.VotingSession{}, domainerrors.ErrInvalidCredentials
	}

	token, err := uc.IDGen.NewID(ctx)
	if err != nil {
		logger.Error("session verify token generation failed",
			"event", "voting_session_verify_token_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"kiosk_id", kioskID,
			"error", err.Error(),
		)
		return entities.VotingSession{}, err
	}
	session := entities.NewVotingSession(token, participant.ParticipantID, kioskID, uc.now(), uc.timeout())
	if err := uc.Sessions.PutSession(ctx, session); err != nil {
		logger.Error("session verify store failed",
			"event", "voting_session_verify_store_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"kiosk_id", kioskID,
			"participant_id", participant.ParticipantID,
			"error", err.Error(),
		)
		return entities.VotingSession{}, err
	}

	logger.Info("session verified",
		"event", "voting_session_verified",
		"module", "ballot-core/voting-engine",
		"layer", "application",
		"kiosk_id", kioskID,
		"participant_id", participant.ParticipantID,
	)
	return session, nil
}

// PresentBallots computes the access snapshot for every election bound to the
// session's kiosk and moves the session into the ballots-presented state. A
// participant with no open election gets the session torn down and
// ErrNoEligibleElection back.
func (uc SessionUseCase) PresentBallots(ctx context.Context, cmd PresentBallotsCommand) (entities.VotingSession, error) {
	logger := application.ResolveLogger(uc.Logger)
	session, err := uc.loadActiveSession(ctx, cmd.Token)
	if err != nil {
		return entities.VotingSession{}, err
	}

	participant, found, err := uc.Directory.GetParticipant(ctx, session.ParticipantID)
	if err != nil {
		logger.Error("present ballots participant lookup failed",
			"event", "voting_present_participant_lookup_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"participant_id", session.ParticipantID,
			"error", err.Error(),
		)
		return entities.VotingSession{}, err
	}
	if !found {
		return entities.VotingSession{}, domainerrors.ErrSessionNotFound
	}

	elections, err := uc.Directory.ListKioskElections(ctx, session.KioskID)
	if err != nil {
		logger.Error("present ballots kiosk election listing failed",
			"event", "voting_present_kiosk_listing_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"kiosk_id", session.KioskID,
			"error", err.Error(),
		)
		return entities.VotingSession{}, err
	}

	accesses := make([]entities.ElectionAccess, 0, len(elections))
	for _, election := range elections {
		hasBallot, err := uc.Ballots.HasBallot(ctx, session.ParticipantID, election.ElectionID)
		if err != nil {
			logger.Error("present ballots ballot check failed",
				"event", "voting_present_ballot_check_failed",
				"module", "ballot-core/voting-engine",
				"layer", "application",
				"participant_id", session.ParticipantID,
				"election_id", election.ElectionID,
				"error", err.Error(),
			)
			return entities.VotingSession{}, err
		}
		accesses = append(accesses, entities.ElectionAccess{
			ElectionID:        election.ElectionID,
			Name:              election.Name,
			Seats:             election.Seats,
			AbstentionAllowed: election.AbstentionAllowed,
			MinimumAttendance: election.MinimumAttendance,
			Status:            entities.ClassifyAccess(hasBallot, participant.AttendanceCredits, election.MinimumAttendance),
		})
	}

	now := uc.now()
	if !session.PresentBallots(accesses, now) {
		return entities.VotingSession{}, domainerrors.ErrSessionStateConflict
	}
	if session.OpenElectionCount() == 0 {
		// Nothing left to vote in: end the session instead of parking the
		// participant on an empty screen.
		if err := uc.Sessions.DeleteSession(ctx, session.Token); err != nil {
			logger.Error("present ballots teardown failed",
				"event", "voting_present_teardown_failed",
				"module", "ballot-core/voting-engine",
				"layer", "application",
				"participant_id", session.ParticipantID,
				"error", err.Error(),
			)
			return entities.VotingSession{}, err
		}
		logger.Info("present ballots found no open election",
			"event", "voting_present_no_open_election",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"participant_id", session.ParticipantID,
			"kiosk_id", session.KioskID,
			"election_count", len(accesses),
		)
		return entities.VotingSession{}, domainerrors.ErrNoEligibleElection
	}

	session.Touch(now, uc.timeout())
	if err := uc.Sessions.PutSession(ctx, session); err != nil {
		logger.Error("present ballots store failed",
			"event", "voting_present_store_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"participant_id", session.ParticipantID,
			"error", err.Error(),
		)
		return entities.VotingSession{}, err
	}

	logger.Info("ballots presented",
		"event", "voting_ballots_presented",
		"module", "ballot-core/voting-engine",
		"layer", "application",
		"participant_id", session.ParticipantID,
		"kiosk_id", session.KioskID,
		"open_elections", session.OpenElectionCount(),
	)
	return session, nil
}

// Logout closes and removes the session. Unknown or already-closed tokens are
// treated as success so kiosks can always reset.
func (uc SessionUseCase) Logout(ctx context.Context, cmd LogoutCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	token := strings.TrimSpace(cmd.Token)
	if token == "" {
		return nil
	}
	session, found, err := uc.Sessions.GetSession(ctx, token)
	if err != nil {
		logger.Error("session logout lookup failed",
			"event", "voting_session_logout_lookup_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"error", err.Error(),
		)
		return err
	}
	if !found {
		return nil
	}
	if err := uc.Sessions.DeleteSession(ctx, token); err != nil {
		logger.Error("session logout delete failed",
			"event", "voting_session_logout_delete_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"participant_id", session.ParticipantID,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("session logged out",
		"event", "voting_session_logged_out",
		"module", "ballot-core/voting-engine",
		"layer", "application",
		"participant_id", session.ParticipantID,
		"kiosk_id", session.KioskID,
	)
	return nil
}

// loadActiveSession fetches a session by token with lazy expiry: a token past
// its idle deadline is expired in place and reported as ErrSessionExpired.
func (uc SessionUseCase) loadActiveSession(ctx context.Context, token string) (entities.VotingSession, error) {
	logger := application.ResolveLogger(uc.Logger)
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.VotingSession{}, domainerrors.ErrInvalidSessionInput
	}
	session, found, err := uc.Sessions.GetSession(ctx, token)
	if err != nil {
		logger.Error("session lookup failed",
			"event", "voting_session_lookup_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.VotingSession{}, err
	}
	if !found {
		return entities.VotingSession{}, domainerrors.ErrSessionNotFound
	}
	now := uc.now()
	if session.IdleExpired(now) {
		session.Expire(now)
		if err := uc.Sessions.DeleteSession(ctx, session.Token); err != nil {
			logger.Error("session expiry delete failed",
				"event", "voting_session_expiry_delete_failed",
				"module", "ballot-core/voting-engine",
				"layer", "application",
				"participant_id", session.ParticipantID,
				"error", err.Error(),
			)
			return entities.VotingSession{}, err
		}
		logger.Info("session expired on access",
			"event", "voting_session_expired",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"participant_id", session.ParticipantID,
			"kiosk_id", session.KioskID,
		)
		return entities.VotingSession{}, domainerrors.ErrSessionExpired
	}
	if session.State == entities.SessionClosed {
		return entities.VotingSession{}, domainerrors.ErrSessionStateConflict
	}
	return session, nil
}

func (uc SessionUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}

func (uc SessionUseCase) timeout() time.Duration {
	if uc.SessionTimeout <= 0 {
		return defaultSessionTimeout
	}
	return uc.SessionTimeout
}
