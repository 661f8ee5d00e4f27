package resultsservice

import (
	"log/slog"

	httpadapter "github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/adapters/http"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/adapters/memory"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/application/queries"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Reader ports.ResultsReader
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	queryUseCase := queries.ResultsQueryUseCase{
		Reader: deps.Reader,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Queries: queryUseCase,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Reader: store,
		Logger: logger,
	})
	module.Store = store
	return module
}
