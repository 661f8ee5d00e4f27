package httpadapter

import (
	"context"
	"log/slog"

	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/application/commands"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/application/queries"
	httptransport "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/transport/http"
)

type Handler struct {
	Attendance commands.AttendanceUseCase
	Queries    queries.AttendanceQueryUseCase
	Logger     *slog.Logger
}

// RegisterParticipantHandler godoc
// @Summary Register a participant
// @Description Creates a participant with an empty attendance record.
// @Tags attendance-service
// @Accept json
// @Produce json
// @Param request body httptransport.RegisterParticipantRequest true "Participant payload"
// @Success 200 {object} httptransport.ParticipantResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/attendance/v1/participants [post]
func (h Handler) RegisterParticipantHandler(ctx context.Context, req httptransport.RegisterParticipantRequest) (httptransport.ParticipantResponse, error) {
	participant, err := h.Attendance.RegisterParticipant(ctx, commands.RegisterParticipantCommand{
		Name:    req.Name,
		Chapter: req.Chapter,
		Gender:  req.Gender,
		Code:    req.Code,
		Secret:  req.Secret,
	})
	if err != nil {
		return httptransport.ParticipantResponse{}, err
	}
	return httptransport.ParticipantResponse{
		ParticipantID: participant.ParticipantID,
		Code:          participant.Code,
		Name:          participant.Name,
		Chapter:       participant.Chapter,
		Gender:        participant.Gender,
		Status:        string(participant.Status),
	}, nil
}

// CheckInHandler godoc
// @Summary Record plenary attendance
// @Description Marks the scanned participant present for one pleno; repeat scans are no-ops.
// @Tags attendance-service
// @Accept json
// @Produce json
// @Param pleno path int true "Plenary session index (1-based)"
// @Param request body httptransport.CheckInRequest true "Participant code"
// @Success 200 {object} httptransport.CheckInResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/attendance/v1/plenos/{pleno}/check-in [post]
func (h Handler) CheckInHandler(ctx context.Context, pleno int, req httptransport.CheckInRequest) (httptransport.CheckInResponse, error) {
	result, err := h.Attendance.RecordPresence(ctx, commands.RecordPresenceCommand{
		Code:  req.Code,
		Pleno: pleno,
	})
	if err != nil {
		return httptransport.CheckInResponse{}, err
	}
	return httptransport.CheckInResponse{
		ParticipantID:  result.Participant.ParticipantID,
		Name:           result.Participant.Name,
		Pleno:          pleno,
		AlreadyPresent: result.AlreadyPresent,
		Total:          result.Record.Total,
	}, nil
}

// GetParticipantHandler godoc
// @Summary Get participant by code
// @Tags attendance-service
// @Produce json
// @Param code path string true "Participant code"
// @Success 200 {object} httptransport.ParticipantDetailResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/attendance/v1/participants/{code} [get]
func (h Handler) GetParticipantHandler(ctx context.Context, code string) (httptransport.ParticipantDetailResponse, error) {
	view, err := h.Queries.GetParticipantByCode(ctx, code)
	if err != nil {
		return httptransport.ParticipantDetailResponse{}, err
	}
	return httptransport.ParticipantDetailResponse{
		ParticipantID: view.Participant.ParticipantID,
		Code:          view.Participant.Code,
		Name:          view.Participant.Name,
		Chapter:       view.Participant.Chapter,
		Status:        string(view.Participant.Status),
		Present:       view.Present,
		Credits:       view.Credits,
	}, nil
}

// RosterHandler godoc
// @Summary List participants present at a pleno
// @Tags attendance-service
// @Produce json
// @Param pleno path int true "Plenary session index (1-based)"
// @Success 200 {object} httptransport.RosterResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /api/attendance/v1/plenos/{pleno}/roster [get]
func (h Handler) RosterHandler(ctx context.Context, pleno int) (httptransport.RosterResponse, error) {
	entries, err := h.Queries.PlenoRoster(ctx, pleno)
	if err != nil {
		return httptransport.RosterResponse{}, err
	}
	items := make([]httptransport.RosterItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, httptransport.RosterItem{
			ParticipantID: entry.ParticipantID,
			Code:          entry.Code,
			Name:          entry.Name,
			Chapter:       entry.Chapter,
			Total:         entry.Total,
		})
	}
	return httptransport.RosterResponse{
		Pleno: pleno,
		Items: items,
	}, nil
}
