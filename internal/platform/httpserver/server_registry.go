package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	registryerrors "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/domain/errors"
	registryhttp "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/transport/http"
)

func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.CreateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.CreateElectionHandler(r.Context(), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListElections(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.ListElectionsHandler(r.Context())
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetElection(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.GetElectionHandler(r.Context(), r.PathValue("election_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateElection(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.UpdateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.UpdateElectionHandler(r.Context(), r.PathValue("election_id"), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterCandidate(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.RegisterCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.RegisterCandidateHandler(r.Context(), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAssignCandidate(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.AssignCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.registry.Handler.AssignCandidateHandler(r.Context(), r.PathValue("election_id"), req); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleElectionCandidates(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.ElectionCandidatesHandler(r.Context(), r.PathValue("election_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateKiosk(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.CreateKioskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.CreateKioskHandler(r.Context(), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleBindKiosk(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.BindKioskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.registry.Handler.BindKioskHandler(r.Context(), r.PathValue("kiosk_id"), req); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleKioskElections(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.KioskElectionsHandler(r.Context(), r.PathValue("kiosk_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeRegistryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registryerrors.ErrInvalidElectionInput),
		errors.Is(err, registryerrors.ErrInvalidCandidateInput),
		errors.Is(err, registryerrors.ErrInvalidKioskInput):
		writeRegistryError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, registryerrors.ErrUnknownOffice):
		writeRegistryError(w, http.StatusUnprocessableEntity, "unknown_office", err.Error())
	case errors.Is(err, registryerrors.ErrElectionNotFound),
		errors.Is(err, registryerrors.ErrCandidateNotFound),
		errors.Is(err, registryerrors.ErrKioskNotFound):
		writeRegistryError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, registryerrors.ErrElectionLocked):
		writeRegistryError(w, http.StatusConflict, "election_locked", err.Error())
	case errors.Is(err, registryerrors.ErrDuplicateBallotPosition),
		errors.Is(err, registryerrors.ErrCandidateAlreadyAssigned),
		errors.Is(err, registryerrors.ErrKioskAlreadyBound):
		writeRegistryError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeRegistryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRegistryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, registryhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
