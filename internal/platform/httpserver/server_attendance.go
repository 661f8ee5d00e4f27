package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	attendanceerrors "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/domain/errors"
	attendancehttp "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/transport/http"
)

func (s *Server) handleRegisterParticipant(w http.ResponseWriter, r *http.Request) {
	var req attendancehttp.RegisterParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAttendanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.attendance.Handler.RegisterParticipantHandler(r.Context(), req)
	if err != nil {
		writeAttendanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetParticipant(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	resp, err := s.attendance.Handler.GetParticipantHandler(r.Context(), code)
	if err != nil {
		writeAttendanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	pleno, err := strconv.Atoi(r.PathValue("pleno"))
	if err != nil {
		writeAttendanceError(w, http.StatusBadRequest, "invalid_pleno", "pleno must be an integer")
		return
	}
	var req attendancehttp.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAttendanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.attendance.Handler.CheckInHandler(r.Context(), pleno, req)
	if err != nil {
		writeAttendanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	pleno, err := strconv.Atoi(r.PathValue("pleno"))
	if err != nil {
		writeAttendanceError(w, http.StatusBadRequest, "invalid_pleno", "pleno must be an integer")
		return
	}
	resp, err := s.attendance.Handler.RosterHandler(r.Context(), pleno)
	if err != nil {
		writeAttendanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAttendanceDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, attendanceerrors.ErrInvalidParticipantInput),
		errors.Is(err, attendanceerrors.ErrInvalidPleno):
		writeAttendanceError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, attendanceerrors.ErrParticipantNotFound):
		writeAttendanceError(w, http.StatusNotFound, "participant_not_found", err.Error())
	case errors.Is(err, attendanceerrors.ErrDuplicateCode):
		writeAttendanceError(w, http.StatusConflict, "duplicate_code", err.Error())
	default:
		writeAttendanceError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAttendanceError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, attendancehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
