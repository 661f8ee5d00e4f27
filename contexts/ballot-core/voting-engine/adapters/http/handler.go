package httpadapter

import (
	"context"
	"log/slog"

	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/application/commands"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/application/queries"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/domain/entities"
	httptransport "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/transport/http"
)

type Handler struct {
	Sessions commands.SessionUseCase
	Queries  queries.BallotQueryUseCase
	Logger   *slog.Logger
}

// VerifyHandler godoc
// @Summary Verify participant credentials
// @Description Opens a voting session bound to the kiosk when code and secret match.
// @Tags voting-engine
// @Accept json
// @Produce json
// @Param request body httptransport.VerifyRequest true "Kiosk credentials"
// @Success 200 {object} httptransport.SessionResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /api/voting/v1/sessions [post]
func (h Handler) VerifyHandler(ctx context.Context, req httptransport.VerifyRequest) (httptransport.SessionResponse, error) {
	session, err := h.Sessions.Verify(ctx, commands.VerifyCommand{
		KioskID:         req.KioskID,
		ParticipantCode: req.Code,
		Secret:          req.Secret,
	})
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return sessionResponse(session), nil
}

// PresentBallotsHandler godoc
// @Summary Present eligible ballots
// @Description Computes the election access snapshot for the session's kiosk and participant.
// @Tags voting-engine
// @Produce json
// @Param token path string true "Session token"
// @Success 200 {object} httptransport.SessionResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 410 {object} httptransport.ErrorResponse
// @Router /api/voting/v1/sessions/{token}/ballots [post]
func (h Handler) PresentBallotsHandler(ctx context.Context, token string) (httptransport.SessionResponse, error) {
	session, err := h.Sessions.PresentBallots(ctx, commands.PresentBallotsCommand{Token: token})
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return sessionResponse(session), nil
}

// SubmitHandler godoc
// @Summary Submit ballots
// @Description Casts one ballot per selected election; elections succeed or fail independently and the session terminates afterward.
// @Tags voting-engine
// @Accept json
// @Produce json
// @Param token path string true "Session token"
// @Param request body httptransport.SubmitRequest true "Selections"
// @Success 200 {object} httptransport.SubmitResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 410 {object} httptransport.ErrorResponse
// @Router /api/voting/v1/sessions/{token}/ballots [put]
func (h Handler) SubmitHandler(ctx context.Context, token string, req httptransport.SubmitRequest) (httptransport.SubmitResponse, error) {
	selections := make([]commands.ElectionSelection, 0, len(req.Selections))
	for _, selection := range req.Selections {
		selections = append(selections, commands.ElectionSelection{
			ElectionID:   selection.ElectionID,
			CandidateIDs: selection.CandidateIDs,
			Abstain:      selection.Abstain,
		})
	}
	result, err := h.Sessions.SubmitBallots(ctx, commands.SubmitBallotsCommand{
		Token:      token,
		Selections: selections,
	})
	if err != nil {
		return httptransport.SubmitResponse{}, err
	}
	resp := httptransport.SubmitResponse{
		Outcomes: make([]httptransport.SubmissionOutcomeResponse, 0, len(result.Outcomes)),
	}
	for _, outcome := range result.Outcomes {
		item := httptransport.SubmissionOutcomeResponse{
			ElectionID: outcome.ElectionID,
			BallotID:   outcome.BallotID,
			Status:     "cast",
		}
		if outcome.Err != nil {
			item.Status = "rejected"
			item.Error = outcome.Err.Error()
		}
		resp.Outcomes = append(resp.Outcomes, item)
	}
	return resp, nil
}

// GetSessionHandler godoc
// @Summary Get session state
// @Tags voting-engine
// @Produce json
// @Param token path string true "Session token"
// @Success 200 {object} httptransport.SessionResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/voting/v1/sessions/{token} [get]
func (h Handler) GetSessionHandler(ctx context.Context, token string) (httptransport.SessionResponse, error) {
	view, err := h.Queries.GetSession(ctx, token)
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	resp := httptransport.SessionResponse{
		Token:         view.Token,
		ParticipantID: view.ParticipantID,
		State:         view.State,
		ExpiresAt:     view.ExpiresAt,
		Elections:     make([]httptransport.ElectionAccessResponse, 0, len(view.Elections)),
	}
	for _, access := range view.Elections {
		resp.Elections = append(resp.Elections, httptransport.ElectionAccessResponse{
			ElectionID:        access.ElectionID,
			Name:              access.Name,
			Seats:             access.Seats,
			AbstentionAllowed: access.AbstentionAllowed,
			Status:            access.Status,
		})
	}
	return resp, nil
}

// LogoutHandler godoc
// @Summary Close a session
// @Description Ends the session; unknown tokens succeed so kiosks can always reset.
// @Tags voting-engine
// @Param token path string true "Session token"
// @Success 204
// @Router /api/voting/v1/sessions/{token} [delete]
func (h Handler) LogoutHandler(ctx context.Context, token string) error {
	return h.Sessions.Logout(ctx, commands.LogoutCommand{Token: token})
}

// ReceiptsHandler godoc
// @Summary List a participant's ballot receipts
// @Description Audit view of cast ballots; candidate choices are never exposed.
// @Tags voting-engine
// @Produce json
// @Param participantID path string true "Participant ID"
// @Success 200 {object} httptransport.ReceiptsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /api/voting/v1/participants/{participantID}/ballots [get]
func (h Handler) ReceiptsHandler(ctx context.Context, participantID string) (httptransport.ReceiptsResponse, error) {
	receipts, err := h.Queries.ParticipantReceipts(ctx, participantID)
	if err != nil {
		return httptransport.ReceiptsResponse{}, err
	}
	resp := httptransport.ReceiptsResponse{
		ParticipantID: participantID,
		Items:         make([]httptransport.BallotReceiptResponse, 0, len(receipts)),
	}
	for _, receipt := range receipts {
		resp.Items = append(resp.Items, httptransport.BallotReceiptResponse{
			BallotID:      receipt.BallotID,
			ElectionID:    receipt.ElectionID,
			ParticipantID: receipt.ParticipantID,
			KioskID:       receipt.KioskID,
			Abstained:     receipt.Abstained,
			CastAt:        receipt.CastAt,
		})
	}
	return resp, nil
}

// ElectionBallotsHandler godoc
// @Summary List an election's ballots
// @Description Audit view of an election's ballots in cast order with kiosk attribution; candidate choices are never exposed.
// @Tags voting-engine
// @Produce json
// @Param electionID path string true "Election ID"
// @Success 200 {object} httptransport.ElectionBallotsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /api/voting/v1/elections/{electionID}/ballots [get]
func (h Handler) ElectionBallotsHandler(ctx context.Context, electionID string) (httptransport.ElectionBallotsResponse, error) {
	receipts, err := h.Queries.ElectionBallots(ctx, electionID)
	if err != nil {
		return httptransport.ElectionBallotsResponse{}, err
	}
	resp := httptransport.ElectionBallotsResponse{
		ElectionID: electionID,
		Items:      make([]httptransport.BallotReceiptResponse, 0, len(receipts)),
	}
	for _, receipt := range receipts {
		resp.Items = append(resp.Items, httptransport.BallotReceiptResponse{
			BallotID:      receipt.BallotID,
			ElectionID:    receipt.ElectionID,
			ParticipantID: receipt.ParticipantID,
			KioskID:       receipt.KioskID,
			Abstained:     receipt.Abstained,
			CastAt:        receipt.CastAt,
		})
	}
	return resp, nil
}

func sessionResponse(session entities.VotingSession) httptransport.SessionResponse {
	resp := httptransport.SessionResponse{
		Token:         session.Token,
		ParticipantID: session.ParticipantID,
		State:         string(session.State),
		ExpiresAt:     session.ExpiresAt,
		Elections:     make([]httptransport.ElectionAccessResponse, 0, len(session.Elections)),
	}
	for _, access := range session.Elections {
		resp.Elections = append(resp.Elections, httptransport.ElectionAccessResponse{
			ElectionID:        access.ElectionID,
			Name:              access.Name,
			Seats:             access.Seats,
			AbstentionAllowed: access.AbstentionAllowed,
			Status:            string(access.Status),
		})
	}
	return resp
}
