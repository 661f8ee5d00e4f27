// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	attendanceservice "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service"
	attendancecrypto "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/adapters/crypto"
	attendancepostgres "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/adapters/postgres"
	electionregistry "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry"
	registrypostgres "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/adapters/postgres"
	resultsservice "github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service"
	resultspostgres "github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/adapters/postgres"
	votingengine "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine"
	votingcrypto "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/adapters/crypto"
	votingpostgres "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/adapters/postgres"
	votingworkers "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/application/workers"
	"github.com/cihuyyama/Musyavote/internal/platform/config"
	"github.com/cihuyyama/Musyavote/internal/platform/db"
	"github.com/cihuyyama/Musyavote/internal/platform/httpserver"
	"github.com/cihuyyama/Musyavote/internal/platform/messaging"

	"golang.org/x/sync/errgroup"
)

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  votingworkers.OutboxRelay
	sweeper      votingworkers.SessionSweeper
	relayEnabled bool
	sweepEnabled bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	attendanceRepo := attendancepostgres.NewRepository(pg.DB, logger)
	attendanceModule := attendanceservice.NewModule(attendanceservice.Dependencies{
		Repository: attendanceRepo,
		Hasher:     attendancecrypto.BcryptHasher{},
		Clock:      attendancepostgres.SystemClock{},
		IDGen:      attendancepostgres.UUIDGenerator{},
		PlenoCount: cfg.PlenoCount,
		Logger:     logger,
	})

	votingRepo := votingpostgres.NewRepository(pg.DB, logger)
	registryRepo := registrypostgres.NewRepository(pg.DB, logger)
	registryModule := electionregistry.NewModule(electionregistry.Dependencies{
		Repository: registryRepo,
		Ballots:    votingRepo,
		Clock:      registrypostgres.SystemClock{},
		IDGen:      registrypostgres.UUIDGenerator{},
		Logger:     logger,
	})

	votingModule := votingengine.NewModule(votingengine.Dependencies{
		Sessions:       votingRepo,
		Ballots:        votingRepo,
		Directory:      votingRepo,
		Verifier:       votingcrypto.BcryptVerifier{},
		Outbox:         votingRepo,
		Clock:          votingpostgres.SystemClock{},
		IDGen:          votingpostgres.UUIDGenerator{},
		SessionTimeout: cfg.VotingSessionTimeout,
		Logger:         logger,
	})

	resultsRepo := resultspostgres.NewRepository(pg.DB, logger)
	resultsModule := resultsservice.NewModule(resultsservice.Dependencies{
		Reader: resultsRepo,
		Logger: logger,
	})

	server := httpserver.New(
		attendanceModule,
		registryModule,
		votingModule,
		resultsModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	votingRepo := votingpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: votingworkers.OutboxRelay{
			Outbox:    votingRepo,
			Publisher: kafka,
			Clock:     votingpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		sweeper: votingworkers.SessionSweeper{
			Sessions:  votingRepo,
			Clock:     votingpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		relayEnabled: cfg.EnableOutboxRelay,
		sweepEnabled: cfg.EnableSessionSweeper,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"relay_enabled", w.relayEnabled,
		"sweep_enabled", w.sweepEnabled,
	)

	group, ctx := errgroup.WithContext(ctx)
	if w.relayEnabled {
		group.Go(func() error {
			return w.runLoop(ctx, w.outboxRelay.RunOnce)
		})
	}
	if w.sweepEnabled {
		group.Go(func() error {
			return w.runLoop(ctx, w.sweeper.RunOnce)
		})
	}
	return group.Wait()
}

func (w *WorkerApp) runLoop(ctx context.Context, step func(context.Context) error) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for {
		if err := step(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
