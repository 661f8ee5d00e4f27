package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	attendanceservice "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service"
	electionregistry "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry"
	resultsservice "github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service"
	votingengine "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/cihuyyama/Musyavote/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	attendance attendanceservice.Module
	registry   electionregistry.Module
	voting     votingengine.Module
	results    resultsservice.Module
}

func New(
	attendance attendanceservice.Module,
	registry electionregistry.Module,
	voting votingengine.Module,
	results resultsservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		attendance: attendance,
		registry:   registry,
		voting:     voting,
		results:    results,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/attendance/v1/participants", s.handleRegisterParticipant)
	s.mux.HandleFunc("GET /api/attendance/v1/participants/{code}", s.handleGetParticipant)
	s.mux.HandleFunc("POST /api/attendance/v1/plenos/{pleno}/check-in", s.handleCheckIn)
	s.mux.HandleFunc("GET /api/attendance/v1/plenos/{pleno}/roster", s.handleRoster)

	s.mux.HandleFunc("POST /api/registry/v1/elections", s.handleCreateElection)
	s.mux.HandleFunc("GET /api/registry/v1/elections", s.handleListElections)
	s.mux.HandleFunc("GET /api/registry/v1/elections/{election_id}", s.handleGetElection)
	s.mux.HandleFunc("PUT /api/registry/v1/elections/{election_id}", s.handleUpdateElection)
	s.mux.HandleFunc("POST /api/registry/v1/candidates", s.handleRegisterCandidate)
	s.mux.HandleFunc("POST /api/registry/v1/elections/{election_id}/candidates", s.handleAssignCandidate)
	s.mux.HandleFunc("GET /api/registry/v1/elections/{election_id}/candidates", s.handleElectionCandidates)
	s.mux.HandleFunc("POST /api/registry/v1/kiosks", s.handleCreateKiosk)
	s.mux.HandleFunc("POST /api/registry/v1/kiosks/{kiosk_id}/elections", s.handleBindKiosk)
	s.mux.HandleFunc("GET /api/registry/v1/kiosks/{kiosk_id}/elections", s.handleKioskElections)

	s.mux.HandleFunc("POST /api/voting/v1/sessions", s.handleVerify)
	s.mux.HandleFunc("GET /api/voting/v1/sessions/{token}", s.handleGetSession)
	s.mux.HandleFunc("DELETE /api/voting/v1/sessions/{token}", s.handleLogout)
	s.mux.HandleFunc("POST /api/voting/v1/sessions/{token}/ballots", s.handlePresentBallots)
	s.mux.HandleFunc("PUT /api/voting/v1/sessions/{token}/ballots", s.handleSubmitBallots)
	s.mux.HandleFunc("GET /api/voting/v1/participants/{participant_id}/ballots", s.handleReceipts)
	s.mux.HandleFunc("GET /api/voting/v1/elections/{election_id}/ballots", s.handleElectionBallots)

	s.mux.HandleFunc("GET /api/results/v1/elections/{election_id}", s.handleElectionResults)
	s.mux.HandleFunc("GET /api/results/v1/elections/{election_id}/tally", s.handleElectionTally)
	s.mux.HandleFunc("GET /api/results/v1/elections/{election_id}/participation", s.handleElectionParticipation)
	s.mux.HandleFunc("GET /api/results/v1/summary", s.handleResultsSummary)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
