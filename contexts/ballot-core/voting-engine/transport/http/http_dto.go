package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type VerifyRequest struct {
	KioskID string `json:"kiosk_id"`
	Code    string `json:"code"`
	Secret  string `json:"secret"`
}

type SessionResponse struct {
	Token         string                   `json:"token"`
	ParticipantID string                   `json:"participant_id"`
	State         string                   `json:"state"`
	ExpiresAt     time.Time                `json:"expires_at"`
	Elections     []ElectionAccessResponse `json:"elections,omitempty"`
}

type ElectionAccessResponse struct {
	ElectionID        string `json:"election_id"`
	Name              string `json:"name"`
	Seats             int    `json:"seats"`
	AbstentionAllowed bool   `json:"abstention_allowed"`
	Status            string `json:"status"`
}

type SelectionRequest struct {
	ElectionID   string   `json:"election_id"`
	CandidateIDs []string `json:"candidate_ids"`
	Abstain      bool     `json:"abstain"`
}

type SubmitRequest struct {
	Selections []SelectionRequest `json:"selections"`
}

type SubmissionOutcomeResponse struct {
	ElectionID string `json:"election_id"`
	BallotID   string `json:"ballot_id,omitempty"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

type SubmitResponse struct {
	Outcomes []SubmissionOutcomeResponse `json:"outcomes"`
}

type BallotReceiptResponse struct {
	BallotID      string    `json:"ballot_id"`
	ElectionID    string    `json:"election_id"`
	ParticipantID string    `json:"participant_id"`
	KioskID       string    `json:"kiosk_id"`
	Abstained     bool      `json:"abstained"`
	CastAt        time.Time `json:"cast_at"`
}

type ReceiptsResponse struct {
	ParticipantID string                  `json:"participant_id"`
	Items         []BallotReceiptResponse `json:"items"`
}

type ElectionBallotsResponse struct {
	ElectionID string                  `json:"election_id"`
	Items      []BallotReceiptResponse `json:"items"`
}
