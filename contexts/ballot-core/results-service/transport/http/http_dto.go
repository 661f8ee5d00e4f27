package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CandidateStandingResponse struct {
	CandidateID    string  `json:"candidate_id"`
	Name           string  `json:"name"`
	Chapter        string  `json:"chapter"`
	Office         string  `json:"office"`
	BallotPosition int     `json:"ballot_position"`
	Votes          int     `json:"votes"`
	Percentage     float64 `json:"percentage"`
	Rank           int     `json:"rank"`
	Selected       bool    `json:"selected"`
}

type TallyResponse struct {
	ElectionID   string                      `json:"election_id"`
	Name         string                      `json:"name"`
	Seats        int                         `json:"seats"`
	TotalBallots int                         `json:"total_ballots"`
	ValidBallots int                         `json:"valid_ballots"`
	Abstentions  int                         `json:"abstentions"`
	Candidates   []CandidateStandingResponse `json:"candidates"`
}

type ParticipationResponse struct {
	ElectionID              string  `json:"election_id"`
	Name                    string  `json:"name"`
	TotalParticipants       int     `json:"total_participants"`
	TotalBallots            int     `json:"total_ballots"`
	Abstentions             int     `json:"abstentions"`
	Voted                   int     `json:"voted"`
	NotYetVoted             int     `json:"not_yet_voted"`
	ParticipationPercentage float64 `json:"participation_percentage"`
	MinimumAttendance       int     `json:"minimum_attendance"`
	QuorumMet               bool    `json:"quorum_met"`
}

type ResultsResponse struct {
	Tally         TallyResponse         `json:"tally"`
	Participation ParticipationResponse `json:"participation"`
}

type SummaryResponse struct {
	Items []ParticipationResponse `json:"items"`
}
