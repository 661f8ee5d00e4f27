package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAttendanceRegisterRejectsMalformedBody(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/attendance/v1/participants", bytes.NewReader([]byte("{oops")))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAttendanceRegisterRejectsMissingFields(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"name":"","code":"P-001","secret":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/attendance/v1/participants", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAttendanceDuplicateCodeConflicts(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"name":"Siti Rahma","chapter":"bandung","code":"P-001","secret":"secret"}`)

	first := httptest.NewRequest(http.MethodPost, "/api/attendance/v1/participants", bytes.NewReader(body))
	first.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, first)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	second := httptest.NewRequest(http.MethodPost, "/api/attendance/v1/participants", bytes.NewReader(body))
	second.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, second)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAttendanceCheckInRejectsNonNumericPleno(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"code":"P-001"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/attendance/v1/plenos/abc/check-in", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAttendanceCheckInUnknownParticipant(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"code":"P-404"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/attendance/v1/plenos/1/check-in", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}
