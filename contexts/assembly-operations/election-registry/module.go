package electionregistry

import (
	"context"
	"log/slog"

	httpadapter "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/adapters/http"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/adapters/memory"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/application/commands"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/application/queries"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/domain/entities"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.RegistryRepository
	Ballots    ports.BallotCounter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	registryUseCase := commands.RegistryUseCase{
		Repository: deps.Repository,
		Ballots:    deps.Ballots,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.RegistryQueryUseCase{
		Repository: deps.Repository,
	}
	return Module{
		Handler: httpadapter.Handler{
			Registry: registryUseCase,
			Queries:  queryUseCase,
			Logger:   deps.Logger,
		},
	}
}

// BallotCounterFunc adapts a counting function to ports.BallotCounter; test
// and in-memory wiring use it to bridge to the ballot store.
type BallotCounterFunc func(ctx context.Context, electionID string) (int, error)

func (f BallotCounterFunc) CountBallots(ctx context.Context, electionID string) (int, error) {
	return f(ctx, electionID)
}

func NewInMemoryModule(seed []entities.Election, ballots ports.BallotCounter, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	if ballots == nil {
		ballots = BallotCounterFunc(func(context.Context, string) (int, error) {
			return 0, nil
		})
	}
	module := NewModule(Dependencies{
		Repository: store,
		Ballots:    ballots,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
