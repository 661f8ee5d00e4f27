package entities

import (
	"math"
	"sort"
)

// CandidateStanding is one candidate's line in an election tally.
type CandidateStanding struct {
	CandidateID    string
	Name           string
	Chapter        string
	Office         string
	BallotPosition int
	Votes          int
	Percentage     float64
	Rank           int
	Selected       bool
}

// ElectionTally is the deterministic result of one election. ValidBallots
// excludes abstentions; percentages are computed against it.
type ElectionTally struct {
	ElectionID   string
	Name         string
	Seats        int
	TotalBallots int
	ValidBallots int
	Abstentions  int
	Candidates   []CandidateStanding
}

// RankStandings orders standings by votes descending with ballot position as
// the tie-break, then assigns percentages, 1-based ranks, and the selected
// flag for the top seats. The same inputs always produce the same output.
func RankStandings(standings []CandidateStanding, validBallots int, seats int) []CandidateStanding {
	ranked := append([]CandidateStanding(nil), standings...)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Votes != ranked[j].Votes {
			return ranked[i].Votes > ranked[j].Votes
		}
		return ranked[i].BallotPosition < ranked[j].BallotPosition
	})
	for i := range ranked {
		ranked[i].Percentage = votePercentage(ranked[i].Votes, validBallots)
		ranked[i].Rank = i + 1
		ranked[i].Selected = seats > 0 && ranked[i].Rank <= seats
	}
	return ranked
}

// votePercentage rounds to two decimal places; zero valid ballots yields
// zero for every candidate.
func votePercentage(votes int, validBallots int) float64 {
	if validBallots <= 0 {
		return 0
	}
	return math.Round(float64(votes)/float64(validBallots)*100*100) / 100
}
