package trainingsservice

import (
	"log/slog"

	httpadapter "hearth/contexts/workspace/trainings-service/adapters/http"
	"hearth/contexts/workspace/trainings-service/adapters/memory"
	"hearth/contexts/workspace/trainings-service/application"
	"hearth/contexts/workspace/trainings-service/ports"
)

// Module is the trainings-service composition root.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository  ports.Repository
	Authorizer  ports.Authorizer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:        deps.Repository,
		Authorizer:  deps.Authorizer,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with an in-memory
// training store. Authorization still goes through the membership service.
func NewInMemoryModule(logger *slog.Logger, authorizer ports.Authorizer) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Authorizer:  authorizer,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
