package entities

import "time"

type ParticipantStatus string

const (
	ParticipantStatusActive   ParticipantStatus = "active"
	ParticipantStatusInactive ParticipantStatus = "inactive"
)

type Participant struct {
	ParticipantID string
	Code          string
	Name          string
	Chapter       string
	Gender        string
	Status        ParticipantStatus
	SecretHash    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AttendanceRecord tracks presence across the fixed set of plenary sessions.
// Total is derived from the presence vector and is never accepted from input.
type AttendanceRecord struct {
	ParticipantID string
	Present       []bool
	Total         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewAttendanceRecord(participantID string, plenoCount int, now time.Time) AttendanceRecord {
	return AttendanceRecord{
		ParticipantID: participantID,
		Present:       make([]bool, plenoCount),
		Total:         0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// MarkPresent sets the 1-based pleno index and recomputes Total. It reports
// whether the record changed; marking an already-present pleno is a no-op.
func (r *AttendanceRecord) MarkPresent(pleno int, now time.Time) bool {
	if pleno < 1 || pleno > len(r.Present) {
		return false
	}
	if r.Present[pleno-1] {
		return false
	}
	r.Present[pleno-1] = true
	r.Total = r.CountPresent()
	r.UpdatedAt = now
	return true
}

// CountPresent is the authoritative derivation of Total.
func (r AttendanceRecord) CountPresent() int {
	total := 0
	for _, present := range r.Present {
		if present {
			total++
		}
	}
	return total
}
