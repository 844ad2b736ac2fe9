package principal

import (
	"log/slog"

	httpadapter "orbit/contexts/identity-access/principal-service/adapters/http"
	"orbit/contexts/identity-access/principal-service/adapters/memory"
	"orbit/contexts/identity-access/principal-service/adapters/token"
	"orbit/contexts/identity-access/principal-service/application"
	"orbit/contexts/identity-access/principal-service/ports"
)

// Module is the principal-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Authenticator ports.TokenAuthenticator
	Requests      ports.RequestRepository
	Roles         ports.RoleAssigner
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

// NewModule wires the service and transport handler using explicit ports.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Authenticator: deps.Authenticator,
		Requests:      deps.Requests,
		Roles:         deps.Roles,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		Logger:        deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module: an in-memory request
// store and role assigner behind an HMAC token parser with the given secret.
func NewInMemoryModule(secret []byte, logger *slog.Logger) Module {
	store := memory.NewStore()

	module := NewModule(Dependencies{
		Authenticator: token.Parser{Secret: secret, Logger: logger},
		Requests:      store,
		Roles:         store,
		Clock:         store,
		IDGenerator:   store,
		Logger:        logger,
	})
	module.Store = store
	return module
}
