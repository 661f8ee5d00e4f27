package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateElectionRequest struct {
	Name              string `json:"name"`
	MinimumAttendance int    `json:"minimum_attendance"`
	Seats             int    `json:"seats"`
	AbstentionAllowed bool   `json:"abstention_allowed"`
}

type UpdateElectionRequest struct {
	Name              string `json:"name"`
	MinimumAttendance int    `json:"minimum_attendance"`
	Seats             int    `json:"seats"`
	AbstentionAllowed bool   `json:"abstention_allowed"`
}

type ElectionResponse struct {
	ElectionID        string `json:"election_id"`
	Name              string `json:"name"`
	MinimumAttendance int    `json:"minimum_attendance"`
	Seats             int    `json:"seats"`
	AbstentionAllowed bool   `json:"abstention_allowed"`
}

type ElectionListResponse struct {
	Items []ElectionResponse `json:"items"`
}

type RegisterCandidateRequest struct {
	Name           string `json:"name"`
	Chapter        string `json:"chapter"`
	Office         string `json:"office"`
	BallotPosition int    `json:"ballot_position"`
}

type CandidateResponse struct {
	CandidateID    string `json:"candidate_id"`
	Name           string `json:"name"`
	Chapter        string `json:"chapter"`
	Office         string `json:"office"`
	BallotPosition int    `json:"ballot_position"`
}

type CandidateListResponse struct {
	ElectionID string              `json:"election_id"`
	Items      []CandidateResponse `json:"items"`
}

type AssignCandidateRequest struct {
	CandidateID string `json:"candidate_id"`
}

type CreateKioskRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

type KioskResponse struct {
	KioskID  string `json:"kiosk_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

type BindKioskRequest struct {
	ElectionID string `json:"election_id"`
}
