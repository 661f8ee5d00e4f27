package votingengine

import (
	"log/slog"
	"time"

	cryptoadapter "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/adapters/crypto"
	httpadapter "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/adapters/http"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/adapters/memory"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/application/commands"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/application/queries"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/application/workers"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Sweeper workers.SessionSweeper
	Store   *memory.Store
}

type Dependencies struct {
	Sessions       ports.SessionStore
	Ballots        ports.BallotRepository
	Directory      ports.DirectoryReader
	Verifier       ports.SecretVerifier
	Outbox         ports.OutboxWriter
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	SessionTimeout time.Duration
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	sessionUseCase := commands.SessionUseCase{
		Sessions:       deps.Sessions,
		Ballots:        deps.Ballots,
		Directory:      deps.Directory,
		Verifier:       deps.Verifier,
		Outbox:         deps.Outbox,
		Clock:          deps.Clock,
		IDGen:          deps.IDGen,
		SessionTimeout: deps.SessionTimeout,
		Logger:         deps.Logger,
	}
	queryUseCase := queries.BallotQueryUseCase{
		Sessions: deps.Sessions,
		Ballots:  deps.Ballots,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Sessions: sessionUseCase,
			Queries:  queryUseCase,
			Logger:   deps.Logger,
		},
		Sweeper: workers.SessionSweeper{
			Sessions: deps.Sessions,
			Clock:    deps.Clock,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(sessionTimeout time.Duration, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Sessions:       store,
		Ballots:        store,
		Directory:      store,
		Verifier:       cryptoadapter.BcryptVerifier{},
		Outbox:         store,
		Clock:          store,
		IDGen:          store,
		SessionTimeout: sessionTimeout,
		Logger:         logger,
	})
	module.Store = store
	return module
}
