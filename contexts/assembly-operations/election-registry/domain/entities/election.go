package entities

import "time"

// OfficeKind is the closed set of offices candidates may run for. Office
// strings from clients are validated at configuration time, never at vote
// time.
type OfficeKind string

const (
	OfficeChair     OfficeKind = "chair"
	OfficeFormateur OfficeKind = "formateur"
)

func ParseOfficeKind(raw string) (OfficeKind, bool) {
	switch OfficeKind(raw) {
	case OfficeChair, OfficeFormateur:
		return OfficeKind(raw), true
	default:
		return "", false
	}
}

// Election carries the voting configuration consumed read-only by the ballot
// core. Configuration is frozen once the first ballot for the election
// exists.
type Election struct {
	ElectionID        string
	Name              string
	MinimumAttendance int
	Seats             int
	AbstentionAllowed bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Candidate struct {
	CandidateID    string
	Name           string
	Chapter        string
	Office         OfficeKind
	BallotPosition int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type KioskStatus string

const (
	KioskStatusActive   KioskStatus = "active"
	KioskStatusDisabled KioskStatus = "disabled"
)

// Kiosk is a supervised voting terminal. The ballot core records kiosk
// identity on every ballot for auditing.
type Kiosk struct {
	KioskID   string
	Name      string
	Username  string
	Status    KioskStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
