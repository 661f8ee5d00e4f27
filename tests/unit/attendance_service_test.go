package unit

import (
	"context"
	"errors"
	"testing"

	attendanceservice "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/domain/errors"
	httptransport "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/transport/http"
)

func TestAttendanceRegisterAndCheckIn(t *testing.T) {
	module := attendanceservice.NewInMemoryModule(nil, nil)

	participant, err := module.Handler.RegisterParticipantHandler(context.Background(), httptransport.RegisterParticipantRequest{
		Name:    "Siti Rahma",
		Chapter: "bandung",
		Gender:  "female",
		Code:    "P-001",
		Secret:  "kiosk-secret",
	})
	if err != nil {
		t.Fatalf("register participant failed: %v", err)
	}
	if participant.ParticipantID == "" {
		t.Fatalf("expected generated participant id")
	}
	if participant.Status != "active" {
		t.Fatalf("expected active status, got %s", participant.Status)
	}

	first, err := module.Handler.CheckInHandler(context.Background(), 1, httptransport.CheckInRequest{Code: "P-001"})
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if first.AlreadyPresent {
		t.Fatalf("expected first check-in to be new")
	}
	if first.Total != 1 {
		t.Fatalf("expected total 1 after first check-in, got %d", first.Total)
	}

	repeat, err := module.Handler.CheckInHandler(context.Background(), 1, httptransport.CheckInRequest{Code: "P-001"})
	if err != nil {
		t.Fatalf("repeat check-in failed: %v", err)
	}
	if !repeat.AlreadyPresent {
		t.Fatalf("expected repeat check-in to be a no-op")
	}
	if repeat.Total != 1 {
		t.Fatalf("expected total to stay 1 on repeat scan, got %d", repeat.Total)
	}

	second, err := module.Handler.CheckInHandler(context.Background(), 3, httptransport.CheckInRequest{Code: "P-001"})
	if err != nil {
		t.Fatalf("second pleno check-in failed: %v", err)
	}
	if second.Total != 2 {
		t.Fatalf("expected total 2 after two plenos, got %d", second.Total)
	}

	detail, err := module.Handler.GetParticipantHandler(context.Background(), "P-001")
	if err != nil {
		t.Fatalf("get participant failed: %v", err)
	}
	if detail.Credits != 2 {
		t.Fatalf("expected 2 attendance credits, got %d", detail.Credits)
	}
	if len(detail.Present) != 4 {
		t.Fatalf("expected presence vector of 4 plenos, got %d", len(detail.Present))
	}
	if !detail.Present[0] || detail.Present[1] || !detail.Present[2] {
		t.Fatalf("unexpected presence vector %v", detail.Present)
	}
}

func TestAttendanceRejectsDuplicateCode(t *testing.T) {
	module := attendanceservice.NewInMemoryModule(nil, nil)

	if _, err := module.Handler.RegisterParticipantHandler(context.Background(), httptransport.RegisterParticipantRequest{
		Name:   "Budi Santoso",
		Code:   "P-002",
		Secret: "secret-a",
	}); err != nil {
		t.Fatalf("register participant failed: %v", err)
	}
	_, err := module.Handler.RegisterParticipantHandler(context.Background(), httptransport.RegisterParticipantRequest{
		Name:   "Another Person",
		Code:   "P-002",
		Secret: "secret-b",
	})
	if !errors.Is(err, domainerrors.ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}
}

func TestAttendanceRejectsPlenoOutOfRange(t *testing.T) {
	module := attendanceservice.NewInMemoryModule(nil, nil)

	if _, err := module.Handler.RegisterParticipantHandler(context.Background(), httptransport.RegisterParticipantRequest{
		Name:   "Budi Santoso",
		Code:   "P-003",
		Secret: "secret",
	}); err != nil {
		t.Fatalf("register participant failed: %v", err)
	}
	if _, err := module.Handler.CheckInHandler(context.Background(), 0, httptransport.CheckInRequest{Code: "P-003"}); !errors.Is(err, domainerrors.ErrInvalidPleno) {
		t.Fatalf("expected ErrInvalidPleno for pleno 0, got %v", err)
	}
	if _, err := module.Handler.CheckInHandler(context.Background(), 5, httptransport.CheckInRequest{Code: "P-003"}); !errors.Is(err, domainerrors.ErrInvalidPleno) {
		t.Fatalf("expected ErrInvalidPleno for pleno 5, got %v", err)
	}
}

func TestAttendanceCheckInUnknownCode(t *testing.T) {
	module := attendanceservice.NewInMemoryModule(nil, nil)

	_, err := module.Handler.CheckInHandler(context.Background(), 1, httptransport.CheckInRequest{Code: "missing"})
	if !errors.Is(err, domainerrors.ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got %v", err)
	}
}

func TestAttendancePlenoRoster(t *testing.T) {
	module := attendanceservice.NewInMemoryModule(nil, nil)

	for _, code := range []string{"P-010", "P-011", "P-012"} {
		if _, err := module.Handler.RegisterParticipantHandler(context.Background(), httptransport.RegisterParticipantRequest{
			Name:   "Participant " + code,
			Code:   code,
			Secret: "secret",
		}); err != nil {
			t.Fatalf("register %s failed: %v", code, err)
		}
	}
	for _, code := range []string{"P-010", "P-012"} {
		if _, err := module.Handler.CheckInHandler(context.Background(), 2, httptransport.CheckInRequest{Code: code}); err != nil {
			t.Fatalf("check-in %s failed: %v", code, err)
		}
	}

	roster, err := module.Handler.RosterHandler(context.Background(), 2)
	if err != nil {
		t.Fatalf("roster failed: %v", err)
	}
	if len(roster.Items) != 2 {
		t.Fatalf("expected 2 present participants, got %d", len(roster.Items))
	}
	for _, item := range roster.Items {
		if item.Code == "P-011" {
			t.Fatalf("absent participant should not be on the roster")
		}
	}
}
