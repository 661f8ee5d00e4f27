package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/ports"
)

type Store struct {
	mu sync.RWMutex

	elections    map[string]ports.ElectionInfo
	order        []string
	candidates   map[string][]ports.CandidateInfo
	ballots      map[string][]ports.BallotRecord
	participants int
}

func NewStore() *Store {
	return &Store{
		elections:  make(map[string]ports.ElectionInfo),
		candidates: make(map[string][]ports.CandidateInfo),
		ballots:    make(map[string][]ports.BallotRecord),
	}
}

// SeedElection installs an election with its candidate list.
func (s *Store) SeedElection(info ports.ElectionInfo, candidates []ports.CandidateInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.elections[info.ElectionID]; !exists {
		s.order = append(s.order, info.ElectionID)
	}
	s.elections[info.ElectionID] = info
	s.candidates[info.ElectionID] = append([]ports.CandidateInfo(nil), candidates...)
}

// SeedBallot appends a cast ballot to an election.
func (s *Store) SeedBallot(electionID string, ballot ports.BallotRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ballots[electionID] = append(s.ballots[electionID], ballot)
}

// SetParticipantCount fixes the roster size used for turnout.
func (s *Store) SetParticipantCount(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants = count
}

func (s *Store) GetElection(_ context.Context, electionID string) (ports.ElectionInfo, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.elections[strings.TrimSpace(electionID)]
	return info, ok, nil
}

func (s *Store) ListElections(_ context.Context) ([]ports.ElectionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	elections := make([]ports.ElectionInfo, 0, len(s.order))
	for _, id := range s.order {
		elections = append(elections, s.elections[id])
	}
	return elections, nil
}

func (s *Store) ListElectionCandidates(_ context.Context, electionID string) ([]ports.CandidateInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidates := append([]ports.CandidateInfo(nil), s.candidates[strings.TrimSpace(electionID)]...)
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].BallotPosition < candidates[j].BallotPosition
	})
	return candidates, nil
}

func (s *Store) ListElectionBallots(_ context.Context, electionID string) ([]ports.BallotRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.BallotRecord(nil), s.ballots[strings.TrimSpace(electionID)]...), nil
}

func (s *Store) CountParticipants(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.participants, nil
}

var _ ports.ResultsReader = (*Store)(nil)
