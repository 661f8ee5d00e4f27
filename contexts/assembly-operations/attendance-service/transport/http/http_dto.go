package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterParticipantRequest struct {
	Name    string `json:"name"`
	Chapter string `json:"chapter"`
	Gender  string `json:"gender"`
	Code    string `json:"code"`
	Secret  string `json:"secret"`
}

type ParticipantResponse struct {
	ParticipantID string `json:"participant_id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Chapter       string `json:"chapter"`
	Gender        string `json:"gender"`
	Status        string `json:"status"`
}

type CheckInRequest struct {
	Code string `json:"code"`
}

type CheckInResponse struct {
	ParticipantID  string `json:"participant_id"`
	Name           string `json:"name"`
	Pleno          int    `json:"pleno"`
	AlreadyPresent bool   `json:"already_present"`
	Total          int    `json:"total"`
}

type ParticipantDetailResponse struct {
	ParticipantID string `json:"participant_id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Chapter       string `json:"chapter"`
	Status        string `json:"status"`
	Present       []bool `json:"present"`
	Credits       int    `json:"credits"`
}

type RosterItem struct {
	ParticipantID string `json:"participant_id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Chapter       string `json:"chapter"`
	Total         int    `json:"total"`
}

type RosterResponse struct {
	Pleno int          `json:"pleno"`
	Items []RosterItem `json:"items"`
}
