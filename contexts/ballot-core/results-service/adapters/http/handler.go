package httpadapter

import (
	"context"
	"log/slog"

	"github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/application/queries"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/domain/entities"
	httptransport "github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/transport/http"
)

type Handler struct {
	Queries queries.ResultsQueryUseCase
	Logger  *slog.Logger
}

// GetResultsHandler godoc
// @Summary Get combined election results
// @Description Tally and participation derived from one ballot snapshot.
// @Tags results-service
// @Produce json
// @Param electionID path string true "Election ID"
// @Success 200 {object} httptransport.ResultsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/results/v1/elections/{electionID} [get]
func (h Handler) GetResultsHandler(ctx context.Context, electionID string) (httptransport.ResultsResponse, error) {
	results, err := h.Queries.Results(ctx, electionID)
	if err != nil {
		return httptransport.ResultsResponse{}, err
	}
	return httptransport.ResultsResponse{
		Tally:         tallyResponse(results.Tally),
		Participation: participationResponse(results.Stats),
	}, nil
}

// GetTallyHandler godoc
// @Summary Get election tally
// @Tags results-service
// @Produce json
// @Param electionID path string true "Election ID"
// @Success 200 {object} httptransport.TallyResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/results/v1/elections/{electionID}/tally [get]
func (h Handler) GetTallyHandler(ctx context.Context, electionID string) (httptransport.TallyResponse, error) {
	tally, err := h.Queries.Tally(ctx, electionID)
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return tallyResponse(tally), nil
}

// GetParticipationHandler godoc
// @Summary Get election participation and quorum
// @Tags results-service
// @Produce json
// @Param electionID path string true "Election ID"
// @Success 200 {object} httptransport.ParticipationResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/results/v1/elections/{electionID}/participation [get]
func (h Handler) GetParticipationHandler(ctx context.Context, electionID string) (httptransport.ParticipationResponse, error) {
	stats, err := h.Queries.Participation(ctx, electionID)
	if err != nil {
		return httptransport.ParticipationResponse{}, err
	}
	return participationResponse(stats), nil
}

// SummaryHandler godoc
// @Summary Participation summary across elections
// @Tags results-service
// @Produce json
// @Success 200 {object} httptransport.SummaryResponse
// @Router /api/results/v1/summary [get]
func (h Handler) SummaryHandler(ctx context.Context) (httptransport.SummaryResponse, error) {
	summary, err := h.Queries.Summary(ctx)
	if err != nil {
		return httptransport.SummaryResponse{}, err
	}
	resp := httptransport.SummaryResponse{
		Items: make([]httptransport.ParticipationResponse, 0, len(summary)),
	}
	for _, stats := range summary {
		resp.Items = append(resp.Items, participationResponse(stats))
	}
	return resp, nil
}

func tallyResponse(tally entities.ElectionTally) httptransport.TallyResponse {
	resp := httptransport.TallyResponse{
		ElectionID:   tally.ElectionID,
		Name:         tally.Name,
		Seats:        tally.Seats,
		TotalBallots: tally.TotalBallots,
		ValidBallots: tally.ValidBallots,
		Abstentions:  tally.Abstentions,
		Candidates:   make([]httptransport.CandidateStandingResponse, 0, len(tally.Candidates)),
	}
	for _, standing := range tally.Candidates {
		resp.Candidates = append(resp.Candidates, httptransport.CandidateStandingResponse{
			CandidateID:    standing.CandidateID,
			Name:           standing.Name,
			Chapter:        standing.Chapter,
			Office:         standing.Office,
			BallotPosition: standing.BallotPosition,
			Votes:          standing.Votes,
			Percentage:     standing.Percentage,
			Rank:           standing.Rank,
			Selected:       standing.Selected,
		})
	}
	return resp
}

func participationResponse(stats entities.ParticipationStats) httptransport.ParticipationResponse {
	return httptransport.ParticipationResponse{
		ElectionID:              stats.ElectionID,
		Name:                    stats.Name,
		TotalParticipants:       stats.TotalParticipants,
		TotalBallots:            stats.TotalBallots,
		Abstentions:             stats.Abstentions,
		Voted:                   stats.Voted,
		NotYetVoted:             stats.NotYetVoted,
		ParticipationPercentage: stats.ParticipationPercentage,
		MinimumAttendance:       stats.MinimumAttendance,
		QuorumMet:               stats.QuorumMet,
	}
}
