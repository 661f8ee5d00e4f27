package httpserver

import (
	"errors"
	"net/http"

	resultserrors "github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/domain/errors"
	resultshttp "github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/transport/http"
)

func (s *Server) handleElectionResults(w http.ResponseWriter, r *http.Request) {
	resp, err := s.results.Handler.GetResultsHandler(r.Context(), r.PathValue("election_id"))
	if err != nil {
		writeResultsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleElectionTally(w http.ResponseWriter, r *http.Request) {
	resp, err := s.results.Handler.GetTallyHandler(r.Context(), r.PathValue("election_id"))
	if err != nil {
		writeResultsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleElectionParticipation(w http.ResponseWriter, r *http.Request) {
	resp, err := s.results.Handler.GetParticipationHandler(r.Context(), r.PathValue("election_id"))
	if err != nil {
		writeResultsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResultsSummary(w http.ResponseWriter, r *http.Request) {
	resp, err := s.results.Handler.SummaryHandler(r.Context())
	if err != nil {
		writeResultsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeResultsDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, resultserrors.ErrInvalidResultsInput):
		writeResultsError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, resultserrors.ErrElectionNotFound):
		writeResultsError(w, http.StatusNotFound, "election_not_found", err.Error())
	default:
		writeResultsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeResultsError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, resultshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
