package unit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	votingengine "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine"
	cryptoadapter "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/adapters/crypto"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/adapters/memory"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/domain/errors"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/ports"
	httptransport "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/transport/http"

	"golang.org/x/crypto/bcrypt"
)

func seedVotingParticipant(t *testing.T, store *memory.Store, participantID string, code string, secret string, credits int) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash secret: %v", err)
	}
	store.SeedParticipant(ports.ParticipantRecord{
		ParticipantID:     participantID,
		Code:              code,
		Name:              "Participant " + code,
		Chapter:           "jakarta",
		Status:            "active",
		SecretHash:        string(hash),
		AttendanceCredits: credits,
	})
}

func TestVotingFullKioskFlow(t *testing.T) {
	module := votingengine.NewInMemoryModule(0, nil)
	seedVotingParticipant(t, module.Store, "participant-1", "P-001", "secret", 3)
	module.Store.SeedElection("kiosk-1", ports.ElectionRecord{
		ElectionID:        "election-1",
		Name:              "Chair Election",
		MinimumAttendance: 3,
		Seats:             1,
		AbstentionAllowed: true,
	}, []string{"cand-1", "cand-2"})

	session, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
		KioskID: "kiosk-1",
		Code:    "P-001",
		Secret:  "secret",
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if session.State != "verified" {
		t.Fatalf("expected verified state, got %s", session.State)
	}
	if session.Token == "" {
		t.Fatalf("expected session token")
	}

	presented, err := module.Handler.PresentBallotsHandler(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("present ballots failed: %v", err)
	}
	if presented.State != "ballots_presented" {
		t.Fatalf("expected ballots_presented state, got %s", presented.State)
	}
	if len(presented.Elections) != 1 {
		t.Fatalf("expected 1 election, got %d", len(presented.Elections))
	}
	if presented.Elections[0].Status != "open" {
		t.Fatalf("expected open election, got %s", presented.Elections[0].Status)
	}

	submitted, err := module.Handler.SubmitHandler(context.Background(), session.Token, httptransport.SubmitRequest{
		Selections: []httptransport.SelectionRequest{
			{ElectionID: "election-1", CandidateIDs: []string{"cand-1"}},
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(submitted.Outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(submitted.Outcomes))
	}
	if submitted.Outcomes[0].Status != "cast" {
		t.Fatalf("expected cast outcome, got %s (%s)", submitted.Outcomes[0].Status, submitted.Outcomes[0].Error)
	}
	if submitted.Outcomes[0].BallotID == "" {
		t.Fatalf("expected ballot id on cast outcome")
	}
	if _, err := module.Handler.GetSessionHandler(context.Background(), session.Token); !errors.Is(err, domainerrors.ErrSessionNotFound) {
		t.Fatalf("expected closed session to be gone, got %v", err)
	}

	receipts, err := module.Handler.ReceiptsHandler(context.Background(), "participant-1")
	if err != nil {
		t.Fatalf("receipts failed: %v", err)
	}
	if len(receipts.Items) != 1 {
		t.Fatalf("expected 1 receipt, got %d", len(receipts.Items))
	}
	if receipts.Items[0].ElectionID != "election-1" || receipts.Items[0].Abstained {
		t.Fatalf("unexpected receipt: %+v", receipts.Items[0])
	}

	audit, err := module.Handler.ElectionBallotsHandler(context.Background(), "election-1")
	if err != nil {
		t.Fatalf("election ballots failed: %v", err)
	}
	if len(audit.Items) != 1 || audit.Items[0].KioskID != "kiosk-1" {
		t.Fatalf("unexpected audit items: %+v", audit.Items)
	}

	// A second visit finds nothing left to vote in.
	again, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
		KioskID: "kiosk-1",
		Code:    "P-001",
		Secret:  "secret",
	})
	if err != nil {
		t.Fatalf("second verify failed: %v", err)
	}
	if _, err := module.Handler.PresentBallotsHandler(context.Background(), again.Token); !errors.Is(err, domainerrors.ErrNoEligibleElection) {
		t.Fatalf("expected ErrNoEligibleElection after voting, got %v", err)
	}
}

func TestVotingVerifyRejectsBadCredentials(t *testing.T) {
	module := votingengine.NewInMemoryModule(0, nil)
	seedVotingParticipant(t, module.Store, "participant-1", "P-001", "secret", 3)

	if _, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
		KioskID: "kiosk-1",
		Code:    "P-001",
		Secret:  "wrong",
	}); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong secret, got %v", err)
	}
	if _, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
		KioskID: "kiosk-1",
		Code:    "unknown",
		Secret:  "secret",
	}); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown code, got %v", err)
	}
	if _, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
		Code:   "P-001",
		Secret: "secret",
	}); !errors.Is(err, domainerrors.ErrInvalidSessionInput) {
		t.Fatalf("expected ErrInvalidSessionInput for missing kiosk, got %v", err)
	}
}

func TestVotingEligibilityGatesPresentation(t *testing.T) {
	module := votingengine.NewInMemoryModule(0, nil)
	seedVotingParticipant(t, module.Store, "participant-1", "P-001", "secret", 1)
	module.Store.SeedElection("kiosk-1", ports.ElectionRecord{
		ElectionID:        "election-strict",
		Name:              "Chair Election",
		MinimumAttendance: 3,
		Seats:             1,
	}, []string{"cand-1"})
	module.Store.SeedElection("kiosk-1", ports.ElectionRecord{
		ElectionID: "election-open",
		Name:       "Formateur Election",
		Seats:      1,
	}, []string{"cand-2"})

	session, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
		KioskID: "kiosk-1",
		Code:    "P-001",
		Secret:  "secret",
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	presented, err := module.Handler.PresentBallotsHandler(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("present ballots failed: %v", err)
	}
	statuses := make(map[string]string, len(presented.Elections))
	for _, access := range presented.Elections {
		statuses[access.ElectionID] = access.Status
	}
	if statuses["election-strict"] != "ineligible" {
		t.Fatalf("expected ineligible access, got %s", statuses["election-strict"])
	}
	if statuses["election-open"] != "open" {
		t.Fatalf("expected open access, got %s", statuses["election-open"])
	}

	submitted, err := module.Handler.SubmitHandler(context.Background(), session.Token, httptransport.SubmitRequest{
		Selections: []httptransport.SelectionRequest{
			{ElectionID: "election-strict", CandidateIDs: []string{"cand-1"}},
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Outcomes[0].Status != "rejected" {
		t.Fatalf("expected rejected outcome, got %s", submitted.Outcomes[0].Status)
	}
	// Submission tears the session down even when nothing was cast.
	if _, err := module.Handler.GetSessionHandler(context.Background(), session.Token); !errors.Is(err, domainerrors.ErrSessionNotFound) {
		t.Fatalf("expected session to be gone after submit, got %v", err)
	}

	// The open election is still votable from a fresh session.
	again, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
		KioskID: "kiosk-1",
		Code:    "P-001",
		Secret:  "secret",
	})
	if err != nil {
		t.Fatalf("second verify failed: %v", err)
	}
	presented, err = module.Handler.PresentBallotsHandler(context.Background(), again.Token)
	if err != nil {
		t.Fatalf("second present failed: %v", err)
	}
	for _, access := range presented.Elections {
		if access.ElectionID == "election-open" && access.Status != "open" {
			t.Fatalf("expected election-open to stay open, got %s", access.Status)
		}
	}
}

func TestVotingPresentWithNoEligibleElection(t *testing.T) {
	module := votingengine.NewInMemoryModule(0, nil)
	seedVotingParticipant(t, module.Store, "participant-1", "P-001", "secret", 0)
	module.Store.SeedElection("kiosk-1", ports.ElectionRecord{
		ElectionID:        "election-1",
		Name:              "Chair Election",
		MinimumAttendance: 3,
		Seats:             1,
	}, []string{"cand-1"})

	session, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
		KioskID: "kiosk-1",
		Code:    "P-001",
		Secret:  "secret",
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if _, err := module.Handler.PresentBallotsHandler(context.Background(), session.Token); !errors.Is(err, domainerrors.ErrNoEligibleElection) {
		t.Fatalf("expected ErrNoEligibleElection, got %v", err)
	}
	// The session is torn down with it.
	if _, err := module.Handler.GetSessionHandler(context.Background(), session.Token); !errors.Is(err, domainerrors.ErrSessionNotFound) {
		t.Fatalf("expected session to be gone, got %v", err)
	}
}

func TestVotingSelectionValidation(t *testing.T) {
	module := votingengine.NewInMemoryModule(0, nil)
	seedVotingParticipant(t, module.Store, "participant-1", "P-001", "secret", 3)
	module.Store.SeedElection("kiosk-1", ports.ElectionRecord{
		ElectionID: "election-1",
		Name:       "Chair Election",
		Seats:      1,
	}, []string{"cand-1", "cand-2"})

	// Every submission consumes its session, so each case starts fresh.
	openSession := func() string {
		t.Helper()
		session, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
			KioskID: "kiosk-1",
			Code:    "P-001",
			Secret:  "secret",
		})
		if err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		if _, err := module.Handler.PresentBallotsHandler(context.Background(), session.Token); err != nil {
			t.Fatalf("present ballots failed: %v", err)
		}
		return session.Token
	}

	cases := []struct {
		name      string
		selection httptransport.SelectionRequest
		want      error
	}{
		{"empty selection", httptransport.SelectionRequest{ElectionID: "election-1"}, domainerrors.ErrEmptySelection},
		{"too many selections", httptransport.SelectionRequest{ElectionID: "election-1", CandidateIDs: []string{"cand-1", "cand-2"}}, domainerrors.ErrTooManySelections},
		{"unknown candidate", httptransport.SelectionRequest{ElectionID: "election-1", CandidateIDs: []string{"cand-9"}}, domainerrors.ErrUnknownCandidate},
		{"abstention not allowed", httptransport.SelectionRequest{ElectionID: "election-1", Abstain: true}, domainerrors.ErrAbstentionNotAllowed},
		{"unpresented election", httptransport.SelectionRequest{ElectionID: "election-9", CandidateIDs: []string{"cand-1"}}, domainerrors.ErrElectionNotPresented},
	}
	for _, tc := range cases {
		submitted, err := module.Handler.SubmitHandler(context.Background(), openSession(), httptransport.SubmitRequest{
			Selections: []httptransport.SelectionRequest{tc.selection},
		})
		if err != nil {
			t.Fatalf("%s: submit failed: %v", tc.name, err)
		}
		outcome := submitted.Outcomes[0]
		if outcome.Status != "rejected" {
			t.Fatalf("%s: expected rejection, got %s", tc.name, outcome.Status)
		}
		if outcome.Error != tc.want.Error() {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want.Error(), outcome.Error)
		}
	}

	// The election is still open after every rejection.
	submitted, err := module.Handler.SubmitHandler(context.Background(), openSession(), httptransport.SubmitRequest{
		Selections: []httptransport.SelectionRequest{
			{ElectionID: "election-1", CandidateIDs: []string{"cand-2"}},
		},
	})
	if err != nil {
		t.Fatalf("final submit failed: %v", err)
	}
	if submitted.Outcomes[0].Status != "cast" {
		t.Fatalf("expected cast after rejections, got %s (%s)", submitted.Outcomes[0].Status, submitted.Outcomes[0].Error)
	}
}

func TestVotingPartialSuccessAcrossElections(t *testing.T) {
	module := votingengine.NewInMemoryModule(0, nil)
	seedVotingParticipant(t, module.Store, "participant-1", "P-001", "secret", 3)
	module.Store.SeedElection("kiosk-1", ports.ElectionRecord{
		ElectionID: "election-a",
		Name:       "Chair Election",
		Seats:      1,
	}, []string{"cand-1"})
	module.Store.SeedElection("kiosk-1", ports.ElectionRecord{
		ElectionID: "election-b",
		Name:       "Formateur Election",
		Seats:      1,
	}, []string{"cand-2"})

	// First visit votes in election-b only.
	first, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
		KioskID: "kiosk-1",
		Code:    "P-001",
		Secret:  "secret",
	})
	if err != nil {
		t.Fatalf("first verify failed: %v", err)
	}
	if _, err := module.Handler.PresentBallotsHandler(context.Background(), first.Token); err != nil {
		t.Fatalf("first present failed: %v", err)
	}
	submitted, err := module.Handler.SubmitHandler(context.Background(), first.Token, httptransport.SubmitRequest{
		Selections: []httptransport.SelectionRequest{
			{ElectionID: "election-b", CandidateIDs: []string{"cand-2"}},
		},
	})
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if submitted.Outcomes[0].Status != "cast" {
		t.Fatalf("expected election-b cast, got %+v", submitted.Outcomes[0])
	}

	// Second visit sees election-a open and election-b already voted.
	second, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
		KioskID: "kiosk-1",
		Code:    "P-001",
		Secret:  "secret",
	})
	if err != nil {
		t.Fatalf("second verify failed: %v", err)
	}
	presented, err := module.Handler.PresentBallotsHandler(context.Background(), second.Token)
	if err != nil {
		t.Fatalf("second present failed: %v", err)
	}
	statuses := make(map[string]string, len(presented.Elections))
	for _, access := range presented.Elections {
		statuses[access.ElectionID] = access.Status
	}
	if statuses["election-a"] != "open" {
		t.Fatalf("expected election-a open, got %s", statuses["election-a"])
	}
	if statuses["election-b"] != "already_voted" {
		t.Fatalf("expected election-b already_voted, got %s", statuses["election-b"])
	}

	// Submitting for both casts in election-a despite election-b failing.
	submitted, err = module.Handler.SubmitHandler(context.Background(), second.Token, httptransport.SubmitRequest{
		Selections: []httptransport.SelectionRequest{
			{ElectionID: "election-a", CandidateIDs: []string{"cand-1"}},
			{ElectionID: "election-b", CandidateIDs: []string{"cand-2"}},
		},
	})
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	byElection := make(map[string]httptransport.SubmissionOutcomeResponse, len(submitted.Outcomes))
	for _, outcome := range submitted.Outcomes {
		byElection[outcome.ElectionID] = outcome
	}
	if byElection["election-a"].Status != "cast" {
		t.Fatalf("expected election-a cast, got %+v", byElection["election-a"])
	}
	if byElection["election-b"].Status != "rejected" || byElection["election-b"].Error != domainerrors.ErrAlreadyVoted.Error() {
		t.Fatalf("expected election-b rejected as already voted, got %+v", byElection["election-b"])
	}
	if _, err := module.Handler.GetSessionHandler(context.Background(), second.Token); !errors.Is(err, domainerrors.ErrSessionNotFound) {
		t.Fatalf("expected session to be gone after partial submit, got %v", err)
	}

	receipts, err := module.Handler.ReceiptsHandler(context.Background(), "participant-1")
	if err != nil {
		t.Fatalf("receipts failed: %v", err)
	}
	if len(receipts.Items) != 2 {
		t.Fatalf("expected 2 receipts, got %d", len(receipts.Items))
	}
}

func TestVotingAbstentionBallot(t *testing.T) {
	module := votingengine.NewInMemoryModule(0, nil)
	seedVotingParticipant(t, module.Store, "participant-1", "P-001", "secret", 3)
	module.Store.SeedElection("kiosk-1", ports.ElectionRecord{
		ElectionID:        "election-1",
		Name:              "Chair Election",
		Seats:             1,
		AbstentionAllowed: true,
	}, []string{"cand-1"})

	session, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
		KioskID: "kiosk-1",
		Code:    "P-001",
		Secret:  "secret",
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if _, err := module.Handler.PresentBallotsHandler(context.Background(), session.Token); err != nil {
		t.Fatalf("present ballots failed: %v", err)
	}
	submitted, err := module.Handler.SubmitHandler(context.Background(), session.Token, httptransport.SubmitRequest{
		Selections: []httptransport.SelectionRequest{
			{ElectionID: "election-1", Abstain: true},
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Outcomes[0].Status != "cast" {
		t.Fatalf("expected abstention cast, got %s (%s)", submitted.Outcomes[0].Status, submitted.Outcomes[0].Error)
	}

	receipts, err := module.Handler.ReceiptsHandler(context.Background(), "participant-1")
	if err != nil {
		t.Fatalf("receipts failed: %v", err)
	}
	if len(receipts.Items) != 1 || !receipts.Items[0].Abstained {
		t.Fatalf("expected one abstained receipt, got %+v", receipts.Items)
	}
}

func TestVotingConcurrentSubmissionsCastOneBallot(t *testing.T) {
	module := votingengine.NewInMemoryModule(0, nil)
	seedVotingParticipant(t, module.Store, "participant-1", "P-001", "secret", 3)
	module.Store.SeedElection("kiosk-1", ports.ElectionRecord{
		ElectionID: "election-1",
		Name:       "Chair Election",
		Seats:      1,
	}, []string{"cand-1"})

	tokens := make([]string, 2)
	for i := range tokens {
		session, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
			KioskID: "kiosk-1",
			Code:    "P-001",
			Secret:  "secret",
		})
		if err != nil {
			t.Fatalf("verify %d failed: %v", i, err)
		}
		if _, err := module.Handler.PresentBallotsHandler(context.Background(), session.Token); err != nil {
			t.Fatalf("present %d failed: %v", i, err)
		}
		tokens[i] = session.Token
	}

	var wg sync.WaitGroup
	results := make([]httptransport.SubmitResponse, len(tokens))
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			resp, err := module.Handler.SubmitHandler(context.Background(), token, httptransport.SubmitRequest{
				Selections: []httptransport.SelectionRequest{
					{ElectionID: "election-1", CandidateIDs: []string{"cand-1"}},
				},
			})
			if err != nil {
				t.Errorf("submit %d failed: %v", i, err)
				return
			}
			results[i] = resp
		}(i, token)
	}
	wg.Wait()

	cast := 0
	for _, resp := range results {
		for _, outcome := range resp.Outcomes {
			if outcome.Status == "cast" {
				cast++
			}
		}
	}
	if cast != 1 {
		t.Fatalf("expected exactly one cast ballot under concurrency, got %d", cast)
	}
	count, err := module.Store.CountBallots(context.Background(), "election-1")
	if err != nil {
		t.Fatalf("count ballots failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 stored ballot, got %d", count)
	}
}

func TestVotingSessionIdleExpiry(t *testing.T) {
	store := memory.NewStore()
	clock := &manualClock{now: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	module := votingengine.NewModule(votingengine.Dependencies{
		Sessions:       store,
		Ballots:        store,
		Directory:      store,
		Verifier:       cryptoadapter.BcryptVerifier{},
		Outbox:         store,
		Clock:          clock,
		IDGen:          store,
		SessionTimeout: 30 * time.Minute,
	})
	seedVotingParticipant(t, store, "participant-1", "P-001", "secret", 3)
	store.SeedElection("kiosk-1", ports.ElectionRecord{
		ElectionID: "election-1",
		Name:       "Chair Election",
		Seats:      1,
	}, []string{"cand-1"})

	session, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
		KioskID: "kiosk-1",
		Code:    "P-001",
		Secret:  "secret",
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	// Activity inside the window slides the deadline.
	clock.now = clock.now.Add(20 * time.Minute)
	if _, err := module.Handler.PresentBallotsHandler(context.Background(), session.Token); err != nil {
		t.Fatalf("present inside window failed: %v", err)
	}
	clock.now = clock.now.Add(20 * time.Minute)
	if _, err := module.Handler.PresentBallotsHandler(context.Background(), session.Token); err != nil {
		t.Fatalf("present after slide failed: %v", err)
	}

	clock.now = clock.now.Add(31 * time.Minute)
	if _, err := module.Handler.PresentBallotsHandler(context.Background(), session.Token); !errors.Is(err, domainerrors.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if _, err := module.Handler.GetSessionHandler(context.Background(), session.Token); !errors.Is(err, domainerrors.ErrSessionNotFound) {
		t.Fatalf("expected expired session to be removed, got %v", err)
	}
}

func TestVotingLogoutIsIdempotent(t *testing.T) {
	module := votingengine.NewInMemoryModule(0, nil)
	seedVotingParticipant(t, module.Store, "participant-1", "P-001", "secret", 3)
	module.Store.SeedElection("kiosk-1", ports.ElectionRecord{
		ElectionID: "election-1",
		Name:       "Chair Election",
		Seats:      1,
	}, []string{"cand-1"})

	session, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
		KioskID: "kiosk-1",
		Code:    "P-001",
		Secret:  "secret",
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if err := module.Handler.LogoutHandler(context.Background(), session.Token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if err := module.Handler.LogoutHandler(context.Background(), session.Token); err != nil {
		t.Fatalf("repeat logout failed: %v", err)
	}
	if err := module.Handler.LogoutHandler(context.Background(), "never-issued"); err != nil {
		t.Fatalf("logout of unknown token failed: %v", err)
	}
}

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time {
	return c.now
}
