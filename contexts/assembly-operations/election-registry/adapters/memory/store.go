package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/domain/entities"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/domain/errors"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	elections  map[string]entities.Election
	candidates map[string]entities.Candidate
	assigned   map[string][]string
	kiosks     map[string]entities.Kiosk
	bound      map[string][]string
}

func NewStore(seed []entities.Election) *Store {
	elections := make(map[string]entities.Election, len(seed))
	for _, election := range seed {
		elections[election.ElectionID] = election
	}
	return &Store{
		elections:  elections,
		candidates: make(map[string]entities.Candidate),
		assigned:   make(map[string][]string),
		kiosks:     make(map[string]entities.Kiosk),
		bound:      make(map[string][]string),
	}
}

func (s *Store) SaveElection(_ context.Context, election entities.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[strings.TrimSpace(election.ElectionID)] = election
	return nil
}

func (s *Store) GetElection(_ context.Context, electionID string) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[strings.TrimSpace(electionID)]
	if !ok {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return election, nil
}

func (s *Store) ListElections(_ context.Context) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Election, 0, len(s.elections))
	for _, election := range s.elections {
		items = append(items, election)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (s *Store) SaveCandidate(_ context.Context, candidate entities.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[strings.TrimSpace(candidate.CandidateID)] = candidate
	return nil
}

func (s *Store) GetCandidate(_ context.Context, candidateID string) (entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.candidates[strings.TrimSpace(candidateID)]
	if !ok {
		return entities.Candidate{}, domainerrors.ErrCandidateNotFound
	}
	return candidate, nil
}

func (s *Store) GetCandidateByOfficePosition(_ context.Context, office entities.OfficeKind, position int) (entities.Candidate, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, candidate := range s.candidates {
		if candidate.Office == office && candidate.BallotPosition == position {
			return candidate, true, nil
		}
	}
	return entities.Candidate{}, false, nil
}

func (s *Store) AssignCandidate(_ context.Context, electionID string, candidateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	electionID = strings.TrimSpace(electionID)
	candidateID = strings.TrimSpace(candidateID)
	for _, assigned := range s.assigned[electionID] {
		if assigned == candidateID {
			return domainerrors.ErrCandidateAlreadyAssigned
		}
	}
	s.assigned[electionID] = append(s.assigned[electionID], candidateID)
	return nil
}

func (s *Store) ListElectionCandidates(_ context.Context, electionID string) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Candidate, 0)
	for _, candidateID := range s.assigned[strings.TrimSpace(electionID)] {
		if candidate, ok := s.candidates[candidateID]; ok {
			items = append(items, candidate)
		}
	}
	return items, nil
}

func (s *Store) SaveKiosk(_ context.Context, kiosk entities.Kiosk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kiosks[strings.TrimSpace(kiosk.KioskID)] = kiosk
	return nil
}

func (s *Store) GetKiosk(_ context.Context, kioskID string) (entities.Kiosk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kiosk, ok := s.kiosks[strings.TrimSpace(kioskID)]
	if !ok {
		return entities.Kiosk{}, domainerrors.ErrKioskNotFound
	}
	return kiosk, nil
}

func (s *Store) BindKiosk(_ context.Context, kioskID string, electionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kioskID = strings.TrimSpace(kioskID)
	electionID = strings.TrimSpace(electionID)
	for _, bound := range s.bound[kioskID] {
		if bound == electionID {
			return domainerrors.ErrKioskAlreadyBound
		}
	}
	s.bound[kioskID] = append(s.bound[kioskID], electionID)
	return nil
}

func (s *Store) ListKioskElections(_ context.Context, kioskID string) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Election, 0)
	for _, electionID := range s.bound[strings.TrimSpace(kioskID)] {
		if election, ok := s.elections[electionID]; ok {
			items = append(items, election)
		}
	}
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.RegistryRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
