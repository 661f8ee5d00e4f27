package queries

import (
	"context"
	"errors"
	"strings"

	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/domain/entities"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/domain/errors"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/ports"
)

type ParticipantView struct {
	Participant entities.Participant
	Present     []bool
	Credits     int
}

type AttendanceQueryUseCase struct {
	Repository ports.AttendanceRepository
}

func (uc AttendanceQueryUseCase) GetParticipantByCode(ctx context.Context, code string) (ParticipantView, error) {
	participant, err := uc.Repository.GetParticipantByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return ParticipantView{}, err
	}
	return uc.buildView(ctx, participant)
}

func (uc AttendanceQueryUseCase) CreditsFor(ctx context.Context, participantID string) (int, error) {
	record, err := uc.Repository.GetAttendance(ctx, strings.TrimSpace(participantID))
	if err != nil {
		if errors.Is(err, domainerrors.ErrParticipantNotFound) {
			return 0, err
		}
		return 0, err
	}
	return record.Total, nil
}

func (uc AttendanceQueryUseCase) PlenoRoster(ctx context.Context, pleno int) ([]ports.RosterEntry, error) {
	if pleno < 1 {
		return nil, domainerrors.ErrInvalidPleno
	}
	return uc.Repository.ListPresentAt(ctx, pleno)
}

func (uc AttendanceQueryUseCase) buildView(ctx context.Context, participant entities.Participant) (ParticipantView, error) {
	view := ParticipantView{Participant: participant}
	record, err := uc.Repository.GetAttendance(ctx, participant.ParticipantID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrParticipantNotFound) {
			return view, nil
		}
		return ParticipantView{}, err
	}
	view.Present = record.Present
	view.Credits = record.Total
	return view, nil
}
