package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/domain/entities"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/domain/errors"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/ports"

	"github.com/google/uuid"
)

// electionSeed bundles a directory election with its assigned candidates and
// kiosk bindings for in-memory wiring.
type electionSeed struct {
	record       ports.ElectionRecord
	candidateIDs []string
}

type Store struct {
	mu sync.RWMutex

	sessions map[string]entities.VotingSession
	ballots  map[string]entities.Ballot

	participants  map[string]ports.ParticipantRecord
	byCode        map[string]string
	elections     map[string]electionSeed
	kioskBindings map[string][]string

	outbox    []ports.OutboxMessage
	published map[string]bool
}

func NewStore() *Store {
	return &Store{
		sessions:      make(map[string]entities.VotingSession),
		ballots:       make(map[string]entities.Ballot),
		participants:  make(map[string]ports.ParticipantRecord),
		byCode:        make(map[string]string),
		elections:     make(map[string]electionSeed),
		kioskBindings: make(map[string][]string),
		published:     make(map[string]bool),
	}
}

// SeedParticipant installs a directory projection row.
func (s *Store) SeedParticipant(record ports.ParticipantRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants[record.ParticipantID] = record
	s.byCode[record.Code] = record.ParticipantID
}

// SeedElection installs an election projection with its candidate assignments
// and binds it to a kiosk.
func (s *Store) SeedElection(kioskID string, record ports.ElectionRecord, candidateIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[record.ElectionID] = electionSeed{
		record:       record,
		candidateIDs: append([]string(nil), candidateIDs...),
	}
	s.kioskBindings[kioskID] = append(s.kioskBindings[kioskID], record.ElectionID)
}

// SetAttendanceCredits updates a seeded participant's live credit total.
func (s *Store) SetAttendanceCredits(participantID string, credits int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.participants[participantID]
	if !ok {
		return
	}
	record.AttendanceCredits = credits
	s.participants[participantID] = record
}

func (s *Store) PutSession(_ context.Context, session entities.VotingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *Store) GetSession(_ context.Context, token string) (entities.VotingSession, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[strings.TrimSpace(token)]
	return session, ok, nil
}

func (s *Store) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, strings.TrimSpace(token))
	return nil
}

func (s *Store) ListIdleSessions(_ context.Context, now time.Time, limit int) ([]entities.VotingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idle := make([]entities.VotingSession, 0)
	for _, session := range s.sessions {
		if session.IdleExpired(now) {
			idle = append(idle, session)
		}
	}
	sort.Slice(idle, func(i, j int) bool {
		return idle[i].ExpiresAt.Before(idle[j].ExpiresAt)
	})
	if limit > 0 && len(idle) > limit {
		idle = idle[:limit]
	}
	return idle, nil
}

func ballotKey(participantID string, electionID string) string {
	return strings.TrimSpace(participantID) + "|" + strings.TrimSpace(electionID)
}

func (s *Store) InsertBallot(_ context.Context, ballot entities.Ballot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ballotKey(ballot.ParticipantID, ballot.ElectionID)
	if _, exists := s.ballots[key]; exists {
		return domainerrors.ErrAlreadyVoted
	}
	s.ballots[key] = ballot
	return nil
}

func (s *Store) HasBallot(_ context.Context, participantID string, electionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ballots[ballotKey(participantID, electionID)]
	return ok, nil
}

func (s *Store) ListBallotsByParticipant(_ context.Context, participantID string) ([]entities.Ballot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	participantID = strings.TrimSpace(participantID)
	ballots := make([]entities.Ballot, 0)
	for _, ballot := range s.ballots {
		if ballot.ParticipantID == participantID {
			ballots = append(ballots, ballot)
		}
	}
	sort.Slice(ballots, func(i, j int) bool {
		return ballots[i].CastAt.Before(ballots[j].CastAt)
	})
	return ballots, nil
}

func (s *Store) ListBallotsByElection(_ context.Context, electionID string) ([]entities.Ballot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	ballots := make([]entities.Ballot, 0)
	for _, ballot := range s.ballots {
		if ballot.ElectionID == electionID {
			ballots = append(ballots, ballot)
		}
	}
	sort.Slice(ballots, func(i, j int) bool {
		return ballots[i].CastAt.Before(ballots[j].CastAt)
	})
	return ballots, nil
}

func (s *Store) CountBallots(_ context.Context, electionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	count := 0
	for _, ballot := range s.ballots {
		if ballot.ElectionID == electionID {
			count++
		}
	}
	return count, nil
}

func (s *Store) GetParticipantByCode(_ context.Context, code string) (ports.ParticipantRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byCode[strings.TrimSpace(code)]
	if !ok {
		return ports.ParticipantRecord{}, false, nil
	}
	return s.participants[id], true, nil
}

func (s *Store) GetParticipant(_ context.Context, participantID string) (ports.ParticipantRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.participants[strings.TrimSpace(participantID)]
	return record, ok, nil
}

func (s *Store) ListKioskElections(_ context.Context, kioskID string) ([]ports.ElectionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.kioskBindings[strings.TrimSpace(kioskID)]
	elections := make([]ports.ElectionRecord, 0, len(ids))
	for _, id := range ids {
		if seed, ok := s.elections[id]; ok {
			elections = append(elections, seed.record)
		}
	}
	return elections, nil
}

func (s *Store) GetElection(_ context.Context, electionID string) (ports.ElectionRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seed, ok := s.elections[strings.TrimSpace(electionID)]
	return seed.record, ok, nil
}

func (s *Store) ListElectionCandidateIDs(_ context.Context, electionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seed, ok := s.elections[strings.TrimSpace(electionID)]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), seed.candidateIDs...), nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := marshalEnvelope(envelope)
	if err != nil {
		return err
	}
	s.outbox = append(s.outbox, ports.OutboxMessage{
		OutboxID:     envelope.EventID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		CreatedAt:    envelope.OccurredAt.UTC(),
	})
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]ports.OutboxMessage, 0)
	for _, message := range s.outbox {
		if s.published[message.OutboxID] {
			continue
		}
		pending = append(pending, message)
		if limit > 0 && len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published[outboxID] = true
	return nil
}

func marshalEnvelope(envelope ports.EventEnvelope) ([]byte, error) {
	return json.Marshal(envelope)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.SessionStore = (*Store)(nil)
var _ ports.BallotRepository = (*Store)(nil)
var _ ports.DirectoryReader = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
