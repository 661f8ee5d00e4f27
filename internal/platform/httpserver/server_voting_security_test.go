package httpserver

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	attendanceservice "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service"
	electionregistry "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry"
	resultsservice "github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service"
	votingengine "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine"
)

func newTestServer() *Server {
	return New(
		attendanceservice.NewInMemoryModule(nil, slog.Default()),
		electionregistry.NewInMemoryModule(nil, nil, slog.Default()),
		votingengine.NewInMemoryModule(0, slog.Default()),
		resultsservice.NewInMemoryModule(slog.Default()),
		slog.Default(),
		":0",
	)
}

func TestVotingVerifyRejectsMalformedBody(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/voting/v1/sessions", bytes.NewReader([]byte("{not-json")))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestVotingVerifyRejectsUnknownCredentials(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"kiosk_id":"kiosk-1","code":"P-404","secret":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/voting/v1/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestVotingSessionLookupUnknownToken(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/voting/v1/sessions/never-issued", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestVotingPresentBallotsUnknownToken(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/voting/v1/sessions/never-issued/ballots", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestVotingSubmitRejectsMalformedBody(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPut, "/api/voting/v1/sessions/token-1/ballots", bytes.NewReader([]byte("[broken")))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestVotingLogoutUnknownTokenSucceeds(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodDelete, "/api/voting/v1/sessions/never-issued", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", rr.Code, rr.Body.String())
	}
}
