package commands

import (
	"encoding/json"

	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/domain/entities"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/ports"
)

const eventTypeBallotCast = "voting.ballot_cast"

// newBallotCastEnvelope builds the outbox event for one cast ballot.
// Events are partitioned by election so tally consumers see a stable order
// per election.
func newBallotCastEnvelope(ballot entities.Ballot) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(map[string]any{
		"ballot_id":       ballot.BallotID,
		"election_id":     ballot.ElectionID,
		"participant_id":  ballot.ParticipantID,
		"kiosk_id":        ballot.KioskID,
		"abstained":       ballot.Abstained,
		"selection_count": len(ballot.CandidateIDs),
		"cast_at":         ballot.CastAt.UTC(),
	})
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          ballot.BallotID,
		EventType:        eventTypeBallotCast,
		OccurredAt:       ballot.CastAt.UTC(),
		SourceService:    "voting-engine",
		TraceID:          ballot.BallotID,
		SchemaVersion:    1,
		PartitionKeyPath: "election_id",
		PartitionKey:     ballot.ElectionID,
		Data:             payload,
	}, nil
}
