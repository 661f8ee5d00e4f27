package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	votingerrors "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/domain/errors"
	votinghttp "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/transport/http"
)

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.voting.Handler.VerifyHandler(r.Context(), req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.GetSessionHandler(r.Context(), r.PathValue("token"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.voting.Handler.LogoutHandler(r.Context(), r.PathValue("token")); err != nil {
		writeVotingDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePresentBallots(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.PresentBallotsHandler(r.Context(), r.PathValue("token"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitBallots(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.voting.Handler.SubmitHandler(r.Context(), r.PathValue("token"), req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReceipts(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ReceiptsHandler(r.Context(), r.PathValue("participant_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleElectionBallots(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ElectionBallotsHandler(r.Context(), r.PathValue("election_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrInvalidSessionInput):
		writeVotingError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, votingerrors.ErrInvalidCredentials):
		writeVotingError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, votingerrors.ErrSessionNotFound):
		writeVotingError(w, http.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrSessionExpired):
		writeVotingError(w, http.StatusGone, "session_expired", err.Error())
	case errors.Is(err, votingerrors.ErrSessionStateConflict):
		writeVotingError(w, http.StatusConflict, "session_state_conflict", err.Error())
	case errors.Is(err, votingerrors.ErrNoEligibleElection):
		writeVotingError(w, http.StatusForbidden, "no_eligible_election", err.Error())
	case errors.Is(err, votingerrors.ErrAlreadyVoted):
		writeVotingError(w, http.StatusConflict, "already_voted", err.Error())
	default:
		writeVotingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeVotingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
