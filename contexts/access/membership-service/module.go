package membershipservice

import (
	"log/slog"

	httpadapter "hearth/contexts/access/membership-service/adapters/http"
	"hearth/contexts/access/membership-service/adapters/memory"
	"hearth/contexts/access/membership-service/application"
	"hearth/contexts/access/membership-service/ports"
)

// Module is the membership-service composition root. Service doubles as the
// authorization port consumed by every workspace resource module.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository  ports.Repository
	Users       ports.UserDirectory
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:        deps.Repository,
		Users:       deps.Users,
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

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. The user directory comes from the identity service so member
// listings can join emails and display names.
func NewInMemoryModule(logger *slog.Logger, users ports.UserDirectory) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Users:       users,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
