package ports

import (
	"context"
	"time"

	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/domain/entities"
)

type AttendanceRepository interface {
	SaveParticipant(ctx context.Context, participant entities.Participant) error
	GetParticipant(ctx context.Context, participantID string) (entities.Participant, error)
	GetParticipantByCode(ctx context.Context, code string) (entities.Participant, error)
	CountParticipants(ctx context.Context) (int, error)
	GetAttendance(ctx context.Context, participantID string) (entities.AttendanceRecord, error)
	SaveAttendance(ctx context.Context, record entities.AttendanceRecord) error
	ListPresentAt(ctx context.Context, pleno int) ([]RosterEntry, error)
}

// RosterEntry is the read shape for per-pleno presence listings consumed by
// the presenter tool.
type RosterEntry struct {
	ParticipantID string
	Code          string
	Name          string
	Chapter       string
	Total         int
}

type SecretHasher interface {
	Hash(plain string) (string, error)
	Compare(hash string, plain string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
