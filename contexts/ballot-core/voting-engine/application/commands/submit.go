package commands

import (
	"context"
	"errors"
	"strings"

	application "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/application"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/domain/entities"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/domain/errors"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/ports"
)

// ElectionSelection is one election's worth of choices inside a submission.
type ElectionSelection struct {
	ElectionID   string
	CandidateIDs []string
	Abstain      bool
}

// SubmitBallotsCommand carries every selection the participant confirmed on
// the kiosk in one call.
type SubmitBallotsCommand struct {
	Token      string
	Selections []ElectionSelection
}

// SubmissionOutcome reports one election's result inside a partial-success
// submission. Err is nil exactly when a ballot was cast.
type SubmissionOutcome struct {
	ElectionID string
	BallotID   string
	Err        error
}

// SubmitBallotsResult is the per-election breakdown plus the session as it
// stands after the submission.
type SubmitBallotsResult struct {
	Outcomes []SubmissionOutcome
	Session  entities.VotingSession
}

// SubmitBallots casts one ballot per selected election. Elections are
// processed independently: a rejected selection never rolls back a ballot
// already cast in the same call. Eligibility is re-checked against live
// attendance at cast time, and the ballot store's uniqueness constraint is the
// final arbiter under concurrent submissions. The session terminates after
// every submission, partial or not; voting again takes a fresh verify.
func (uc SessionUseCase) SubmitBallots(ctx context.Context, cmd SubmitBallotsCommand) (SubmitBallotsResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	session, err := uc.loadActiveSession(ctx, cmd.Token)
	if err != nil {
		return SubmitBallotsResult{}, err
	}
	if session.State != entities.SessionBallotsPresented {
		return SubmitBallotsResult{}, domainerrors.ErrSessionStateConflict
	}
	if len(cmd.Selections) == 0 {
		return SubmitBallotsResult{}, domainerrors.ErrInvalidSessionInput
	}
	logger.Info("ballot submission started",
		"event", "voting_submit_started",
		"module", "ballot-core/voting-engine",
		"layer", "application",
		"participant_id", session.ParticipantID,
		"kiosk_id", session.KioskID,
		"selection_count", len(cmd.Selections),
	)

	participant, found, err := uc.Directory.GetParticipant(ctx, session.ParticipantID)
	if err != nil {
		logger.Error("ballot submission participant lookup failed",
			"event", "voting_submit_participant_lookup_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"participant_id", session.ParticipantID,
			"error", err.Error(),
		)
		return SubmitBallotsResult{}, err
	}
	if !found {
		return SubmitBallotsResult{}, domainerrors.ErrSessionNotFound
	}

	now := uc.now()
	outcomes := make([]SubmissionOutcome, 0, len(cmd.Selections))
	for _, selection := range cmd.Selections {
		outcome := uc.castOne(ctx, &session, participant, selection)
		outcomes = append(outcomes, outcome)
	}

	session.Close(now)
	if err := uc.Sessions.DeleteSession(ctx, session.Token); err != nil {
		logger.Error("ballot submission session close failed",
			"event", "voting_submit_close_failed",
			"module", "ballot-core/voting-engine",
			"layer", "application",
			"participant_id", session.ParticipantID,
			"error", err.Error(),
		)
		return SubmitBallotsResult{}, err
	}

	cast := 0
	for _, outcome := range outcomes {
		if outcome.Err == nil {
			cast++
		}
	}
	logger.Info("ballot submission completed",
		"event", "voting_submit_completed",
		"module", "ballot-core/voting-engine",
		"layer", "application",
		"participant_id", session.ParticipantID,
		"kiosk_id", session.KioskID,
		"cast_count", cast,
		"rejected_count", len(outcomes)-cast,
	)
	return SubmitBallotsResult{Outcomes: outcomes, Session: session}, nil
}

// castOne validates and persists a single election's selection. Failures are
// returned inside the outcome so sibling elections keep going.
func (uc SessionUseCase) castOne(
	ctx context.Context,
	session *entities.VotingSession,
	participant ports.ParticipantRecord,
	selection ElectionSelection,
) SubmissionOutcome {
	logger := application.ResolveLogger(uc.Logger)
	electionID := strings.TrimSpace(selection.ElectionID)
	outcome := SubmissionOutcome{ElectionID: electionID}

	access, presented := session.AccessFor(electionID)
	if !presented {
		outcome.Err = domainerrors.ErrElectionNotPresented
		return outcome
	}
	if access.Status == entities.ElectionAccessAlreadyVoted {
		outcome.Err = domainerrors.ErrAlreadyVoted
		return outcome
	}
	if access.Status == entities.ElectionAccessIneligible {
		outcome.Err = domainerrors.ErrNotEligible
		return outcome
	}

	election, found, err := uc.Directory.GetElection(ctx, electionID)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	if !found {
		outcome.Err = domainerrors.ErrElectionNotPresented
		return outcome
	}
	// Attendance can move between presentation and cast; the live total wins.
	if !entities.EligibleForElection(participant.AttendanceCredits, election.MinimumAttendance) {
		session.SetAccessStatus(electionID, entities.ElectionAccessIneligible)
		outcome.Err = domainerrors.ErrNotEligible
		return outcome
	}

	if err := uc.validateSelection(ctx, election, selection); err != nil {
		outcome.Err = err
		return outcome
	}

	ballotID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	ballot := entities.Ballot{
		BallotID:      ballotID,
		ElectionID:    electionID,
		ParticipantID: session.ParticipantID,
		KioskID:       session.KioskID,
		CandidateIDs:  normalizeCandidateIDs(selection.CandidateIDs),
		Abstained:     selection.Abstain,
		CastAt:        uc.now(),
	}
	if err := uc.Ballots.InsertBallot(ctx, ballot); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyVoted) {
			session.SetAccessStatus(electionID, entities.ElectionAccessAlreadyVoted)
		}
		outcome.Err = err
		return outcome
	}
	session.SetAccessStatus(electionID, entities.ElectionAccessAlreadyVoted)

	if uc.Outbox != nil {
		envelope, err := newBallotCastEnvelope(ballot)
		if err == nil {
			err = uc.Outbox.AppendOutbox(ctx, envelope)
		}
		if err != nil {
			// The ballot is durable; a failed outbox append only costs the
			// event, so log and keep the cast successful.
			logger.Error("ballot cast outbox append failed",
				"event", "voting_submit_outbox_failed",
				"module", "ballot-core/voting-engine",
				"layer", "application",
				"ballot_id", ballot.BallotID,
				"election_id", electionID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("ballot cast",
		"event", "voting_ballot_cast",
		"module", "ballot-core/voting-engine",
		"layer", "application",
		"ballot_id", ballot.BallotID,
		"election_id", electionID,
		"participant_id", session.ParticipantID,
		"abstained", ballot.Abstained,
		"selection_count", len(ballot.CandidateIDs),
	)
	outcome.BallotID = ballot.BallotID
	return outcome
}

// validateSelection applies the election's ballot rules to one selection.
func (uc SessionUseCase) validateSelection(
	ctx context.Context,
	election ports.ElectionRecord,
	selection ElectionSelection,
) error {
	candidateIDs := normalizeCandidateIDs(selection.CandidateIDs)
	if selection.Abstain {
		if !election.AbstentionAllowed {
			return domainerrors.ErrAbstentionNotAllowed
		}
		if len(candidateIDs) > 0 {
			return domainerrors.ErrInvalidSessionInput
		}
		return nil
	}
	if len(candidateIDs) == 0 {
		return domainerrors.ErrEmptySelection
	}
	if len(candidateIDs) > election.Seats {
		return domainerrors.ErrTooManySelections
	}
	seen := make(map[string]struct{}, len(candidateIDs))
	for _, candidateID := range candidateIDs {
		if _, dup := seen[candidateID]; dup {
			return domainerrors.ErrDuplicateSelection
		}
		seen[candidateID] = struct{}{}
	}
	assigned, err := uc.Directory.ListElectionCandidateIDs(ctx, election.ElectionID)
	if err != nil {
		return err
	}
	valid := make(map[string]struct{}, len(assigned))
	for _, candidateID := range assigned {
		valid[candidateID] = struct{}{}
	}
	for _, candidateID := range candidateIDs {
		if _, ok := valid[candidateID]; !ok {
			return domainerrors.ErrUnknownCandidate
		}
	}
	return nil
}

func normalizeCandidateIDs(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
