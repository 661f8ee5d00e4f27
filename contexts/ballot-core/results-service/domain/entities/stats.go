package entities

import "math"

// ParticipationStats reports turnout and quorum for one election. Quorum is
// met when the ballot count, abstentions included, reaches the election's
// minimum attendance.
type ParticipationStats struct {
	ElectionID              string
	Name                    string
	TotalParticipants       int
	TotalBallots            int
	Abstentions             int
	Voted                   int
	NotYetVoted             int
	ParticipationPercentage float64
	MinimumAttendance       int
	QuorumMet               bool
}

// BuildParticipationStats derives turnout figures from a single ballot
// snapshot so stats and tally never disagree.
func BuildParticipationStats(
	electionID string,
	name string,
	totalParticipants int,
	totalBallots int,
	abstentions int,
	minimumAttendance int,
) ParticipationStats {
	notYetVoted := totalParticipants - totalBallots
	if notYetVoted < 0 {
		notYetVoted = 0
	}
	participation := 0.0
	if totalParticipants > 0 {
		participation = math.Round(float64(totalBallots)/float64(totalParticipants)*100*100) / 100
	}
	return ParticipationStats{
		ElectionID:              electionID,
		Name:                    name,
		TotalParticipants:       totalParticipants,
		TotalBallots:            totalBallots,
		Abstentions:             abstentions,
		Voted:                   totalBallots - abstentions,
		NotYetVoted:             notYetVoted,
		ParticipationPercentage: participation,
		MinimumAttendance:       minimumAttendance,
		QuorumMet:               totalBallots >= minimumAttendance,
	}
}
