package entities

import "time"

// Ballot is one participant's immutable choice in one election. The store
// enforces at most one row per (participant, election) pair; a ballot is never
// updated or deleted once cast.
type Ballot struct {
	BallotID      string
	ElectionID    string
	ParticipantID string
	KioskID       string
	CandidateIDs  []string
	Abstained     bool
	CastAt        time.Time
}

// Counts reports how this ballot contributes to a tally: abstentions are
// recorded but carry no candidate votes.
func (b Ballot) Counts() bool {
	return !b.Abstained && len(b.CandidateIDs) > 0
}
