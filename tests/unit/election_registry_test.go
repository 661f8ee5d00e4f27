package unit

import (
	"context"
	"errors"
	"testing"

	electionregistry "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/domain/errors"
	httptransport "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/transport/http"
)

func TestRegistryElectionLifecycle(t *testing.T) {
	module := electionregistry.NewInMemoryModule(nil, nil, nil)

	election, err := module.Handler.CreateElectionHandler(context.Background(), httptransport.CreateElectionRequest{
		Name:              "Chair Election",
		MinimumAttendance: 3,
		Seats:             1,
		AbstentionAllowed: true,
	})
	if err != nil {
		t.Fatalf("create election failed: %v", err)
	}
	if election.ElectionID == "" {
		t.Fatalf("expected generated election id")
	}

	updated, err := module.Handler.UpdateElectionHandler(context.Background(), election.ElectionID, httptransport.UpdateElectionRequest{
		Name:              "Chair Election",
		MinimumAttendance: 2,
		Seats:             1,
		AbstentionAllowed: false,
	})
	if err != nil {
		t.Fatalf("update election failed: %v", err)
	}
	if updated.MinimumAttendance != 2 || updated.AbstentionAllowed {
		t.Fatalf("update did not apply: %+v", updated)
	}

	fetched, err := module.Handler.GetElectionHandler(context.Background(), election.ElectionID)
	if err != nil {
		t.Fatalf("get election failed: %v", err)
	}
	if fetched.MinimumAttendance != 2 {
		t.Fatalf("expected persisted minimum attendance 2, got %d", fetched.MinimumAttendance)
	}

	listed, err := module.Handler.ListElectionsHandler(context.Background())
	if err != nil {
		t.Fatalf("list elections failed: %v", err)
	}
	if len(listed.Items) != 1 {
		t.Fatalf("expected 1 election, got %d", len(listed.Items))
	}
}

func TestRegistryElectionLockedAfterFirstBallot(t *testing.T) {
	ballots := electionregistry.BallotCounterFunc(func(context.Context, string) (int, error) {
		return 1, nil
	})
	module := electionregistry.NewInMemoryModule(nil, ballots, nil)

	election, err := module.Handler.CreateElectionHandler(context.Background(), httptransport.CreateElectionRequest{
		Name:  "Formateur Election",
		Seats: 3,
	})
	if err != nil {
		t.Fatalf("create election failed: %v", err)
	}

	_, err = module.Handler.UpdateElectionHandler(context.Background(), election.ElectionID, httptransport.UpdateElectionRequest{
		Name:  "Formateur Election",
		Seats: 5,
	})
	if !errors.Is(err, domainerrors.ErrElectionLocked) {
		t.Fatalf("expected ErrElectionLocked on update, got %v", err)
	}

	candidate, err := module.Handler.RegisterCandidateHandler(context.Background(), httptransport.RegisterCandidateRequest{
		Name:           "Candidate One",
		Office:         "formateur",
		BallotPosition: 1,
	})
	if err != nil {
		t.Fatalf("register candidate failed: %v", err)
	}
	err = module.Handler.AssignCandidateHandler(context.Background(), election.ElectionID, httptransport.AssignCandidateRequest{
		CandidateID: candidate.CandidateID,
	})
	if !errors.Is(err, domainerrors.ErrElectionLocked) {
		t.Fatalf("expected ErrElectionLocked on assignment, got %v", err)
	}
}

func TestRegistryElectionInputValidation(t *testing.T) {
	module := electionregistry.NewInMemoryModule(nil, nil, nil)

	cases := []httptransport.CreateElectionRequest{
		{Name: "", Seats: 1},
		{Name: "Chair Election", Seats: 0},
		{Name: "Chair Election", Seats: 1, MinimumAttendance: -1},
	}
	for _, req := range cases {
		if _, err := module.Handler.CreateElectionHandler(context.Background(), req); !errors.Is(err, domainerrors.ErrInvalidElectionInput) {
			t.Fatalf("expected ErrInvalidElectionInput for %+v, got %v", req, err)
		}
	}
}

func TestRegistryCandidateRules(t *testing.T) {
	module := electionregistry.NewInMemoryModule(nil, nil, nil)

	if _, err := module.Handler.RegisterCandidateHandler(context.Background(), httptransport.RegisterCandidateRequest{
		Name:           "Candidate One",
		Office:         "president",
		BallotPosition: 1,
	}); !errors.Is(err, domainerrors.ErrUnknownOffice) {
		t.Fatalf("expected ErrUnknownOffice, got %v", err)
	}

	first, err := module.Handler.RegisterCandidateHandler(context.Background(), httptransport.RegisterCandidateRequest{
		Name:           "Candidate One",
		Chapter:        "jakarta",
		Office:         "chair",
		BallotPosition: 1,
	})
	if err != nil {
		t.Fatalf("register candidate failed: %v", err)
	}
	if first.Office != "chair" {
		t.Fatalf("expected normalized office chair, got %s", first.Office)
	}

	if _, err := module.Handler.RegisterCandidateHandler(context.Background(), httptransport.RegisterCandidateRequest{
		Name:           "Candidate Two",
		Office:         "chair",
		BallotPosition: 1,
	}); !errors.Is(err, domainerrors.ErrDuplicateBallotPosition) {
		t.Fatalf("expected ErrDuplicateBallotPosition, got %v", err)
	}

	// The same position is free in the other office.
	if _, err := module.Handler.RegisterCandidateHandler(context.Background(), httptransport.RegisterCandidateRequest{
		Name:           "Candidate Three",
		Office:         "formateur",
		BallotPosition: 1,
	}); err != nil {
		t.Fatalf("register candidate in other office failed: %v", err)
	}
}

func TestRegistryCandidateAssignmentAndKioskBinding(t *testing.T) {
	module := electionregistry.NewInMemoryModule(nil, nil, nil)

	election, err := module.Handler.CreateElectionHandler(context.Background(), httptransport.CreateElectionRequest{
		Name:  "Chair Election",
		Seats: 1,
	})
	if err != nil {
		t.Fatalf("create election failed: %v", err)
	}
	candidate, err := module.Handler.RegisterCandidateHandler(context.Background(), httptransport.RegisterCandidateRequest{
		Name:           "Candidate One",
		Office:         "chair",
		BallotPosition: 1,
	})
	if err != nil {
		t.Fatalf("register candidate failed: %v", err)
	}

	if err := module.Handler.AssignCandidateHandler(context.Background(), election.ElectionID, httptransport.AssignCandidateRequest{
		CandidateID: candidate.CandidateID,
	}); err != nil {
		t.Fatalf("assign candidate failed: %v", err)
	}
	assigned, err := module.Handler.ElectionCandidatesHandler(context.Background(), election.ElectionID)
	if err != nil {
		t.Fatalf("election candidates failed: %v", err)
	}
	if len(assigned.Items) != 1 || assigned.Items[0].CandidateID != candidate.CandidateID {
		t.Fatalf("unexpected assignment list: %+v", assigned.Items)
	}

	kiosk, err := module.Handler.CreateKioskHandler(context.Background(), httptransport.CreateKioskRequest{
		Name:     "Bilik 1",
		Username: "bilik-1",
	})
	if err != nil {
		t.Fatalf("create kiosk failed: %v", err)
	}
	if kiosk.Status != "active" {
		t.Fatalf("expected active kiosk, got %s", kiosk.Status)
	}
	if err := module.Handler.BindKioskHandler(context.Background(), kiosk.KioskID, httptransport.BindKioskRequest{
		ElectionID: election.ElectionID,
	}); err != nil {
		t.Fatalf("bind kiosk failed: %v", err)
	}
	bound, err := module.Handler.KioskElectionsHandler(context.Background(), kiosk.KioskID)
	if err != nil {
		t.Fatalf("kiosk elections failed: %v", err)
	}
	if len(bound.Items) != 1 || bound.Items[0].ElectionID != election.ElectionID {
		t.Fatalf("unexpected kiosk binding list: %+v", bound.Items)
	}
}
