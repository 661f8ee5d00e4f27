package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/domain/entities"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/domain/errors"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	participants map[string]entities.Participant
	byCode       map[string]string
	attendance   map[string]entities.AttendanceRecord
}

func NewStore(seed []entities.Participant) *Store {
	participants := make(map[string]entities.Participant, len(seed))
	byCode := make(map[string]string, len(seed))
	for _, participant := range seed {
		participants[participant.ParticipantID] = participant
		byCode[participant.Code] = participant.ParticipantID
	}
	return &Store{
		participants: participants,
		byCode:       byCode,
		attendance:   make(map[string]entities.AttendanceRecord),
	}
}

func (s *Store) SaveParticipant(_ context.Context, participant entities.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(participant.ParticipantID)
	if existingID, ok := s.byCode[participant.Code]; ok && existingID != id {
		return domainerrors.ErrDuplicateCode
	}
	s.participants[id] = participant
	s.byCode[participant.Code] = id
	return nil
}

func (s *Store) GetParticipant(_ context.Context, participantID string) (entities.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	participant, ok := s.participants[strings.TrimSpace(participantID)]
	if !ok {
		return entities.Participant{}, domainerrors.ErrParticipantNotFound
	}
	return participant, nil
}

func (s *Store) GetParticipantByCode(_ context.Context, code string) (entities.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byCode[strings.TrimSpace(code)]
	if !ok {
		return entities.Participant{}, domainerrors.ErrParticipantNotFound
	}
	return s.participants[id], nil
}

func (s *Store) CountParticipants(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants), nil
}

func (s *Store) GetAttendance(_ context.Context, participantID string) (entities.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.attendance[strings.TrimSpace(participantID)]
	if !ok {
		return entities.AttendanceRecord{}, domainerrors.ErrParticipantNotFound
	}
	copied := record
	copied.Present = append([]bool(nil), record.Present...)
	return copied, nil
}

func (s *Store) SaveAttendance(_ context.Context, record entities.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := record
	copied.Present = append([]bool(nil), record.Present...)
	copied.Total = record.CountPresent()
	s.attendance[strings.TrimSpace(record.ParticipantID)] = copied
	return nil
}

func (s *Store) ListPresentAt(_ context.Context, pleno int) ([]ports.RosterEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]ports.RosterEntry, 0)
	for participantID, record := range s.attendance {
		if pleno < 1 || pleno > len(record.Present) || !record.Present[pleno-1] {
			continue
		}
		participant := s.participants[participantID]
		entries = append(entries, ports.RosterEntry{
			ParticipantID: participantID,
			Code:          participant.Code,
			Name:          participant.Name,
			Chapter:       participant.Chapter,
			Total:         record.Total,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Code < entries[j].Code
	})
	return entries, nil
}

// SystemClock satisfies ports.Clock for wiring and tests.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.AttendanceRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
