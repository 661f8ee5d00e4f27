package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	registryhttp "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/transport/http"
)

func TestRegistryCreateElectionRejectsInvalidInput(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"name":"","seats":0}`)
	req := httptest.NewRequest(http.MethodPost, "/api/registry/v1/elections", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRegistryGetElectionUnknownID(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/registry/v1/elections/missing", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRegistryRegisterCandidateUnknownOffice(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"name":"Candidate One","office":"president","ballot_position":1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/registry/v1/candidates", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRegistryKioskBindingRoundTrip(t *testing.T) {
	server := newTestServer()

	var election registryhttp.ElectionResponse
	createElection := httptest.NewRequest(http.MethodPost, "/api/registry/v1/elections",
		bytes.NewReader([]byte(`{"name":"Chair Election","seats":1}`)))
	createElection.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, createElection)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create election: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &election); err != nil {
		t.Fatalf("decode election: %v", err)
	}

	var kiosk registryhttp.KioskResponse
	createKiosk := httptest.NewRequest(http.MethodPost, "/api/registry/v1/kiosks",
		bytes.NewReader([]byte(`{"name":"Bilik 1","username":"bilik-1"}`)))
	createKiosk.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, createKiosk)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create kiosk: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &kiosk); err != nil {
		t.Fatalf("decode kiosk: %v", err)
	}

	bind := httptest.NewRequest(http.MethodPost, "/api/registry/v1/kiosks/"+kiosk.KioskID+"/elections",
		bytes.NewReader([]byte(`{"election_id":"`+election.ElectionID+`"}`)))
	bind.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, bind)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("bind kiosk: expected 204, got %d body=%s", rr.Code, rr.Body.String())
	}

	list := httptest.NewRequest(http.MethodGet, "/api/registry/v1/kiosks/"+kiosk.KioskID+"/elections", nil)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, list)
	if rr.Code != http.StatusOK {
		t.Fatalf("list kiosk elections: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var bound registryhttp.ElectionListResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &bound); err != nil {
		t.Fatalf("decode kiosk elections: %v", err)
	}
	if len(bound.Items) != 1 || bound.Items[0].ElectionID != election.ElectionID {
		t.Fatalf("unexpected kiosk elections: %+v", bound.Items)
	}
}

func TestResultsUnknownElectionReturnsNotFound(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/results/v1/elections/missing", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}
