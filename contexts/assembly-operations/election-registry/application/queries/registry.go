package queries

import (
	"context"
	"sort"
	"strings"

	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/domain/entities"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/ports"
)

type RegistryQueryUseCase struct {
	Repository ports.RegistryRepository
}

func (uc RegistryQueryUseCase) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	return uc.Repository.GetElection(ctx, strings.TrimSpace(electionID))
}

func (uc RegistryQueryUseCase) ListElections(ctx context.Context) ([]entities.Election, error) {
	return uc.Repository.ListElections(ctx)
}

// ElectionCandidates returns the ballot for one election in ballot-position
// order, the order kiosk screens render.
func (uc RegistryQueryUseCase) ElectionCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error) {
	if _, err := uc.Repository.GetElection(ctx, strings.TrimSpace(electionID)); err != nil {
		return nil, err
	}
	candidates, err := uc.Repository.ListElectionCandidates(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return nil, err
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Office == candidates[j].Office {
			return candidates[i].BallotPosition < candidates[j].BallotPosition
		}
		return candidates[i].Office < candidates[j].Office
	})
	return candidates, nil
}

func (uc RegistryQueryUseCase) KioskElections(ctx context.Context, kioskID string) ([]entities.Election, error) {
	if _, err := uc.Repository.GetKiosk(ctx, strings.TrimSpace(kioskID)); err != nil {
		return nil, err
	}
	return uc.Repository.ListKioskElections(ctx, strings.TrimSpace(kioskID))
}
