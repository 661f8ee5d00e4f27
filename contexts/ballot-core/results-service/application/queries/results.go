package queries

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/application"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/domain/entities"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/domain/errors"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/ports"
)

// ElectionResults bundles tally and participation derived from the same
// ballot snapshot, so the two views always agree on counts.
type ElectionResults struct {
	Tally entities.ElectionTally
	Stats entities.ParticipationStats
}

// ResultsQueryUseCase computes election results on demand. Every read is a
// fresh snapshot; nothing is cached between calls.
type ResultsQueryUseCase struct {
	Reader ports.ResultsReader
	Logger *slog.Logger
}

// Results returns the combined tally and participation view for one election.
func (uc ResultsQueryUseCase) Results(ctx context.Context, electionID string) (ElectionResults, error) {
	logger := application.ResolveLogger(uc.Logger)
	electionID = strings.TrimSpace(electionID)
	if electionID == "" {
		return ElectionResults{}, domainerrors.ErrInvalidResultsInput
	}

	election, found, err := uc.Reader.GetElection(ctx, electionID)
	if err != nil {
		logger.Error("results election lookup failed",
			"event", "results_election_lookup_failed",
			"module", "ballot-core/results-service",
			"layer", "application",
			"election_id", electionID,
			"error", err.Error(),
		)
		return ElectionResults{}, err
	}
	if !found {
		return ElectionResults{}, domainerrors.ErrElectionNotFound
	}

	candidates, err := uc.Reader.ListElectionCandidates(ctx, electionID)
	if err != nil {
		logger.Error("results candidate listing failed",
			"event", "results_candidate_listing_failed",
			"module", "ballot-core/results-service",
			"layer", "application",
			"election_id", electionID,
			"error", err.Error(),
		)
		return ElectionResults{}, err
	}
	ballots, err := uc.Reader.ListElectionBallots(ctx, electionID)
	if err != nil {
		logger.Error("results ballot listing failed",
			"event", "results_ballot_listing_failed",
			"module", "ballot-core/results-service",
			"layer", "application",
			"election_id", electionID,
			"error", err.Error(),
		)
		return ElectionResults{}, err
	}
	totalParticipants, err := uc.Reader.CountParticipants(ctx)
	if err != nil {
		logger.Error("results participant count failed",
			"event", "results_participant_count_failed",
			"module", "ballot-core/results-service",
			"layer", "application",
			"error", err.Error(),
		)
		return ElectionResults{}, err
	}

	results := buildResults(election, candidates, ballots, totalParticipants)
	logger.Info("results computed",
		"event", "results_computed",
		"module", "ballot-core/results-service",
		"layer", "application",
		"election_id", electionID,
		"total_ballots", results.Stats.TotalBallots,
		"quorum_met", results.Stats.QuorumMet,
	)
	return results, nil
}

// Tally returns only the candidate standings for one election.
func (uc ResultsQueryUseCase) Tally(ctx context.Context, electionID string) (entities.ElectionTally, error) {
	results, err := uc.Results(ctx, electionID)
	if err != nil {
		return entities.ElectionTally{}, err
	}
	return results.Tally, nil
}

// Participation returns only the turnout and quorum view for one election.
func (uc ResultsQueryUseCase) Participation(ctx context.Context, electionID string) (entities.ParticipationStats, error) {
	results, err := uc.Results(ctx, electionID)
	if err != nil {
		return entities.ParticipationStats{}, err
	}
	return results.Stats, nil
}

// Summary computes participation for every election, for the committee
// dashboard.
func (uc ResultsQueryUseCase) Summary(ctx context.Context) ([]entities.ParticipationStats, error) {
	logger := application.ResolveLogger(uc.Logger)
	elections, err := uc.Reader.ListElections(ctx)
	if err != nil {
		logger.Error("results summary listing failed",
			"event", "results_summary_listing_failed",
			"module", "ballot-core/results-service",
			"layer", "application",
			"error", err.Error(),
		)
		return nil, err
	}
	totalParticipants, err := uc.Reader.CountParticipants(ctx)
	if err != nil {
		return nil, err
	}
	summary := make([]entities.ParticipationStats, 0, len(elections))
	for _, election := range elections {
		ballots, err := uc.Reader.ListElectionBallots(ctx, election.ElectionID)
		if err != nil {
			return nil, err
		}
		abstentions := 0
		for _, ballot := range ballots {
			if ballot.Abstained {
				abstentions++
			}
		}
		summary = append(summary, entities.BuildParticipationStats(
			election.ElectionID,
			election.Name,
			totalParticipants,
			len(ballots),
			abstentions,
			election.MinimumAttendance,
		))
	}
	return summary, nil
}

// buildResults folds one ballot snapshot into both views. Votes for
// candidates no longer assigned to the election are dropped rather than
// invalidating the whole ballot.
func buildResults(
	election ports.ElectionInfo,
	candidates []ports.CandidateInfo,
	ballots []ports.BallotRecord,
	totalParticipants int,
) ElectionResults {
	votes := make(map[string]int, len(candidates))
	assigned := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		assigned[candidate.CandidateID] = struct{}{}
	}

	abstentions := 0
	validBallots := 0
	for _, ballot := range ballots {
		if ballot.Abstained {
			abstentions++
			continue
		}
		validBallots++
		for _, candidateID := range ballot.CandidateIDs {
			if _, ok := assigned[candidateID]; ok {
				votes[candidateID]++
			}
		}
	}

	standings := make([]entities.CandidateStanding, 0, len(candidates))
	for _, candidate := range candidates {
		standings = append(standings, entities.CandidateStanding{
			CandidateID:    candidate.CandidateID,
			Name:           candidate.Name,
			Chapter:        candidate.Chapter,
			Office:         candidate.Office,
			BallotPosition: candidate.BallotPosition,
			Votes:          votes[candidate.CandidateID],
		})
	}

	tally := entities.ElectionTally{
		ElectionID:   election.ElectionID,
		Name:         election.Name,
		Seats:        election.Seats,
		TotalBallots: len(ballots),
		ValidBallots: validBallots,
		Abstentions:  abstentions,
		Candidates:   entities.RankStandings(standings, validBallots, election.Seats),
	}
	stats := entities.BuildParticipationStats(
		election.ElectionID,
		election.Name,
		totalParticipants,
		len(ballots),
		abstentions,
		election.MinimumAttendance,
	)
	return ElectionResults{Tally: tally, Stats: stats}
}
