package httpadapter

import (
	"context"
	"log/slog"

	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/application/commands"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/application/queries"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/domain/entities"
	httptransport "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/transport/http"
)

type Handler struct {
	Registry commands.RegistryUseCase
	Queries  queries.RegistryQueryUseCase
	Logger   *slog.Logger
}

// CreateElectionHandler godoc
// @Summary Create an election
// @Tags election-registry
// @Accept json
// @Produce json
// @Param request body httptransport.CreateElectionRequest true "Election configuration"
// @Success 200 {object} httptransport.ElectionResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /api/registry/v1/elections [post]
func (h Handler) CreateElectionHandler(ctx context.Context, req httptransport.CreateElectionRequest) (httptransport.ElectionResponse, error) {
	election, err := h.Registry.CreateElection(ctx, commands.CreateElectionCommand{
		Name:              req.Name,
		MinimumAttendance: req.MinimumAttendance,
		Seats:             req.Seats,
		AbstentionAllowed: req.AbstentionAllowed,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return mapElection(election), nil
}

// UpdateElectionHandler godoc
// @Summary Update election configuration
// @Description Rejected once the first ballot for the election has been cast.
// @Tags election-registry
// @Accept json
// @Produce json
// @Param election_id path string true "Election id"
// @Param request body httptransport.UpdateElectionRequest true "Election configuration"
// @Success 200 {object} httptransport.ElectionResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/registry/v1/elections/{election_id} [patch]
func (h Handler) UpdateElectionHandler(ctx context.Context, electionID string, req httptransport.UpdateElectionRequest) (httptransport.ElectionResponse, error) {
	election, err := h.Registry.UpdateElection(ctx, commands.UpdateElectionCommand{
		ElectionID:        electionID,
		Name:              req.Name,
		MinimumAttendance: req.MinimumAttendance,
		Seats:             req.Seats,
		AbstentionAllowed: req.AbstentionAllowed,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return mapElection(election), nil
}

func (h Handler) GetElectionHandler(ctx context.Context, electionID string) (httptransport.ElectionResponse, error) {
	election, err := h.Queries.GetElection(ctx, electionID)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return mapElection(election), nil
}

func (h Handler) ListElectionsHandler(ctx context.Context) (httptransport.ElectionListResponse, error) {
	elections, err := h.Queries.ListElections(ctx)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}
	items := make([]httptransport.ElectionResponse, 0, len(elections))
	for _, election := range elections {
		items = append(items, mapElection(election))
	}
	return httptransport.ElectionListResponse{Items: items}, nil
}

// RegisterCandidateHandler godoc
// @Summary Register a candidate
// @Description Office must be a known office kind; ballot position is unique within an office.
// @Tags election-registry
// @Accept json
// @Produce json
// @Param request body httptransport.RegisterCandidateRequest true "Candidate payload"
// @Success 200 {object} httptransport.CandidateResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/registry/v1/candidates [post]
func (h Handler) RegisterCandidateHandler(ctx context.Context, req httptransport.RegisterCandidateRequest) (httptransport.CandidateResponse, error) {
	candidate, err := h.Registry.RegisterCandidate(ctx, commands.RegisterCandidateCommand{
		Name:           req.Name,
		Chapter:        req.Chapter,
		Office:         req.Office,
		BallotPosition: req.BallotPosition,
	})
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return mapCandidate(candidate), nil
}

func (h Handler) AssignCandidateHandler(ctx context.Context, electionID string, req httptransport.AssignCandidateRequest) error {
	return h.Registry.AssignCandidate(ctx, electionID, req.CandidateID)
}

func (h Handler) ElectionCandidatesHandler(ctx context.Context, electionID string) (httptransport.CandidateListResponse, error) {
	candidates, err := h.Queries.ElectionCandidates(ctx, electionID)
	if err != nil {
		return httptransport.CandidateListResponse{}, err
	}
	items := make([]httptransport.CandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, mapCandidate(candidate))
	}
	return httptransport.CandidateListResponse{
		ElectionID: electionID,
		Items:      items,
	}, nil
}

func (h Handler) CreateKioskHandler(ctx context.Context, req httptransport.CreateKioskRequest) (httptransport.KioskResponse, error) {
	kiosk, err := h.Registry.CreateKiosk(ctx, commands.CreateKioskCommand{
		Name:     req.Name,
		Username: req.Username,
	})
	if err != nil {
		return httptransport.KioskResponse{}, err
	}
	return httptransport.KioskResponse{
		KioskID:  kiosk.KioskID,
		Name:     kiosk.Name,
		Username: kiosk.Username,
		Status:   string(kiosk.Status),
	}, nil
}

func (h Handler) BindKioskHandler(ctx context.Context, kioskID string, req httptransport.BindKioskRequest) error {
	return h.Registry.BindKiosk(ctx, kioskID, req.ElectionID)
}

func (h Handler) KioskElectionsHandler(ctx context.Context, kioskID string) (httptransport.ElectionListResponse, error) {
	elections, err := h.Queries.KioskElections(ctx, kioskID)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}
	items := make([]httptransport.ElectionResponse, 0, len(elections))
	for _, election := range elections {
		items = append(items, mapElection(election))
	}
	return httptransport.ElectionListResponse{Items: items}, nil
}

func mapElection(election entities.Election) httptransport.ElectionResponse {
	return httptransport.ElectionResponse{
		ElectionID:        election.ElectionID,
		Name:              election.Name,
		MinimumAttendance: election.MinimumAttendance,
		Seats:             election.Seats,
		AbstentionAllowed: election.AbstentionAllowed,
	}
}

func mapCandidate(candidate entities.Candidate) httptransport.CandidateResponse {
	return httptransport.CandidateResponse{
		CandidateID:    candidate.CandidateID,
		Name:           candidate.Name,
		Chapter:        candidate.Chapter,
		Office:         string(candidate.Office),
		BallotPosition: candidate.BallotPosition,
	}
}
