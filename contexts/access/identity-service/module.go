package identityservice

import (
	"log/slog"

	httpadapter "hearth/contexts/access/identity-service/adapters/http"
	"hearth/contexts/access/identity-service/adapters/memory"
	"hearth/contexts/access/identity-service/application"
	"hearth/contexts/access/identity-service/ports"
)

// Module is the identity-service composition root. Service is consumed by the
// HTTP layer to resolve the caller on every request.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Mode        string
	Verifier    ports.TokenVerifier
	Users       ports.UserRepository
	Profiles    ports.ProfileSink
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Mode:        deps.Mode,
		Verifier:    deps.Verifier,
		Users:       deps.Users,
		Profiles:    deps.Profiles,
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
// user store and header-based identity resolution.
func NewInMemoryModule(logger *slog.Logger, profiles ports.ProfileSink) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Mode:        ports.ModeHeader,
		Users:       store,
		Profiles:    profiles,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
