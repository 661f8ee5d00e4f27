package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/application"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/domain/entities"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/domain/errors"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/ports"
)

// RegisterParticipantCommand is the write-model input for registration.
type RegisterParticipantCommand struct {
	Name    string
	Chapter string
	Gender  string
	Code    string
	Secret  string
}

// RecordPresenceCommand marks one participant present at one plenary session.
// The presenter tool scans the participant code, so lookup is code-based.
type RecordPresenceCommand struct {
	Code  string
	Pleno int
}

type RecordPresenceResult struct {
	Participant    entities.Participant
	Record         entities.AttendanceRecord
	AlreadyPresent bool
}

// AttendanceUseCase owns participant registration and the attendance ledger.
// Check-in is idempotent per (participant, pleno) and the record total is
// recomputed from the presence vector on every mutation.
type AttendanceUseCase struct {
	Repository ports.AttendanceRepository
	Hasher     ports.SecretHasher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	PlenoCount int
	Logger     *slog.Logger
}

func (uc AttendanceUseCase) RegisterParticipant(ctx context.Context, cmd RegisterParticipantCommand) (entities.Participant, error) {
	logger := application.ResolveLogger(uc.Logger)
	code := strings.TrimSpace(cmd.Code)
	if strings.TrimSpace(cmd.Name) == "" || code == "" || strings.TrimSpace(cmd.Secret) == "" {
		logger.Warn("participant registration validation failed",
			"event", "attendance_register_validation_failed",
			"module", "assembly-operations/attendance-service",
			"layer", "application",
			"code", code,
		)
		return entities.Participant{}, domainerrors.ErrInvalidParticipantInput
	}

	if _, err := uc.Repository.GetParticipantByCode(ctx, code); err == nil {
		return entities.Participant{}, domainerrors.ErrDuplicateCode
	} else if !errors.Is(err, domainerrors.ErrParticipantNotFound) {
		return entities.Participant{}, err
	}

	secretHash, err := uc.Hasher.Hash(strings.TrimSpace(cmd.Secret))
	if err != nil {
		return entities.Participant{}, err
	}
	participantID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Participant{}, err
	}

	now := uc.now()
	participant := entities.Participant{
		ParticipantID: participantID,
		Code:          code,
		Name:          strings.TrimSpace(cmd.Name),
		Chapter:       strings.TrimSpace(cmd.Chapter),
		Gender:        strings.TrimSpace(cmd.Gender),
		Status:        entities.ParticipantStatusActive,
		SecretHash:    secretHash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.Repository.SaveParticipant(ctx, participant); err != nil {
		return entities.Participant{}, err
	}
	if err := uc.Repository.SaveAttendance(ctx, entities.NewAttendanceRecord(participantID, uc.resolvePlenoCount(), now)); err != nil {
		return entities.Participant{}, err
	}

	logger.Info("participant registered",
		"event", "attendance_participant_registered",
		"module", "assembly-operations/attendance-service",
		"layer", "application",
		"participant_id", participant.ParticipantID,
		"code", participant.Code,
	)
	return participant, nil
}

// RecordPresence is idempotent: checking in an already-present pleno returns
// the unchanged record with AlreadyPresent set instead of an error.
func (uc AttendanceUseCase) RecordPresence(ctx context.Context, cmd RecordPresenceCommand) (RecordPresenceResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Pleno < 1 || cmd.Pleno > uc.resolvePlenoCount() {
		logger.Warn("check-in pleno out of range",
			"event", "attendance_checkin_invalid_pleno",
			"module", "assembly-operations/attendance-service",
			"layer", "application",
			"pleno", cmd.Pleno,
		)
		return RecordPresenceResult{}, domainerrors.ErrInvalidPleno
	}

	participant, err := uc.Repository.GetParticipantByCode(ctx, strings.TrimSpace(cmd.Code))
	if err != nil {
		return RecordPresenceResult{}, err
	}

	now := uc.now()
	record, err := uc.Repository.GetAttendance(ctx, participant.ParticipantID)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrParticipantNotFound) {
			return RecordPresenceResult{}, err
		}
		// Imported participants may predate the ledger; start an empty record.
		record = entities.NewAttendanceRecord(participant.ParticipantID, uc.resolvePlenoCount(), now)
	}

	changed := record.MarkPresent(cmd.Pleno, now)
	if changed {
		if err := uc.Repository.SaveAttendance(ctx, record); err != nil {
			return RecordPresenceResult{}, err
		}
	}

	logger.Info("check-in processed",
		"event", "attendance_checkin_processed",
		"module", "assembly-operations/attendance-service",
		"layer", "application",
		"participant_id", participant.ParticipantID,
		"pleno", cmd.Pleno,
		"already_present", !changed,
		"total", record.Total,
	)
	return RecordPresenceResult{
		Participant:    participant,
		Record:         record,
		AlreadyPresent: !changed,
	}, nil
}

func (uc AttendanceUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc AttendanceUseCase) resolvePlenoCount() int {
	if uc.PlenoCount <= 0 {
		return 4
	}
	return uc.PlenoCount
}
