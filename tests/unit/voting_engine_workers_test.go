package unit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	votingengine "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/adapters/memory"
	votingworkers "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/application/workers"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/ports"
	httptransport "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/transport/http"
)

type capturingPublisher struct {
	topics []string
	events []ports.EventEnvelope
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func castOneBallot(t *testing.T, module votingengine.Module) {
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
	submitted, err := module.Handler.SubmitHandler(context.Background(), session.Token, httptransport.SubmitRequest{
		Selections: []httptransport.SelectionRequest{
			{ElectionID: "election-1", CandidateIDs: []string{"cand-1"}},
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Outcomes[0].Status != "cast" {
		t.Fatalf("expected cast outcome, got %s (%s)", submitted.Outcomes[0].Status, submitted.Outcomes[0].Error)
	}
}

func TestVotingOutboxRelayPublishesBallotCast(t *testing.T) {
	module := votingengine.NewInMemoryModule(0, nil)
	seedVotingParticipant(t, module.Store, "participant-1", "P-001", "secret", 3)
	module.Store.SeedElection("kiosk-1", ports.ElectionRecord{
		ElectionID: "election-1",
		Name:       "Chair Election",
		Seats:      1,
	}, []string{"cand-1"})
	castOneBallot(t, module)

	publisher := &capturingPublisher{}
	relay := votingworkers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: publisher,
		Clock:     module.Store,
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.events))
	}
	if publisher.topics[0] != "voting.ballot_cast" {
		t.Fatalf("unexpected topic %s", publisher.topics[0])
	}
	event := publisher.events[0]
	if event.PartitionKey != "election-1" {
		t.Fatalf("expected election partition key, got %s", event.PartitionKey)
	}

	// The payload carries turnout fields but never candidate choices.
	var payload map[string]any
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload["election_id"] != "election-1" || payload["participant_id"] != "participant-1" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if _, leaked := payload["candidate_ids"]; leaked {
		t.Fatalf("ballot choices must not appear in events")
	}

	// A second cycle finds the row already published.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected no republish, got %d events", len(publisher.events))
	}
}

func TestVotingSessionSweeperRemovesIdleSessions(t *testing.T) {
	store := memory.NewStore()
	clock := &manualClock{now: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	module := votingengine.NewModule(votingengine.Dependencies{
		Sessions:       store,
		Ballots:        store,
		Directory:      store,
		Verifier:       stubVerifier{},
		Clock:          clock,
		IDGen:          store,
		SessionTimeout: 30 * time.Minute,
	})
	seedVotingParticipant(t, store, "participant-1", "P-001", "secret", 3)

	session, err := module.Handler.VerifyHandler(context.Background(), httptransport.VerifyRequest{
		KioskID: "kiosk-1",
		Code:    "P-001",
		Secret:  "secret",
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	sweeper := votingworkers.SessionSweeper{
		Sessions: store,
		Clock:    clock,
	}
	if err := sweeper.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep inside window failed: %v", err)
	}
	if _, found, _ := store.GetSession(context.Background(), session.Token); !found {
		t.Fatalf("live session must survive the sweep")
	}

	clock.now = clock.now.Add(31 * time.Minute)
	if err := sweeper.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep past deadline failed: %v", err)
	}
	if _, found, _ := store.GetSession(context.Background(), session.Token); found {
		t.Fatalf("idle session must be swept")
	}
}

type stubVerifier struct{}

func (stubVerifier) Compare(string, string) error {
	return nil
}
