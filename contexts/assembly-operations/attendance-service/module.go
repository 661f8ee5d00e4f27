package attendanceservice

import (
	"log/slog"

	cryptoadapter "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/adapters/crypto"
	httpadapter "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/adapters/http"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/adapters/memory"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/application/commands"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/application/queries"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/domain/entities"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.AttendanceRepository
	Hasher     ports.SecretHasher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	PlenoCount int
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	attendanceUseCase := commands.AttendanceUseCase{
		Repository: deps.Repository,
		Hasher:     deps.Hasher,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		PlenoCount: deps.PlenoCount,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.AttendanceQueryUseCase{
		Repository: deps.Repository,
	}
	return Module{
		Handler: httpadapter.Handler{
			Attendance: attendanceUseCase,
			Queries:    queryUseCase,
			Logger:     deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Participant, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Hasher:     cryptoadapter.BcryptHasher{},
		Clock:      store,
		IDGen:      store,
		PlenoCount: 4,
		Logger:     logger,
	})
	module.Store = store
	return module
}
