package lifecycle

import (
	"log/slog"

	httpadapter "orbit/contexts/tenancy/lifecycle-service/adapters/http"
	identityadapter "orbit/contexts/tenancy/lifecycle-service/adapters/identity"
	"orbit/contexts/tenancy/lifecycle-service/adapters/memory"
	"orbit/contexts/tenancy/lifecycle-service/application"
	"orbit/contexts/tenancy/lifecycle-service/application/fanout"
	"orbit/contexts/tenancy/lifecycle-service/ports"
)

// Module is the lifecycle-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Organizations ports.OrganizationRepository
	Spaces        ports.SpaceRepository
	Provisioners  []ports.ContextProvisioner
	Identity      ports.IdentityRoleService
	Outbox        ports.OutboxStore
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	PublishEvents bool
	Logger        *slog.Logger
}

// NewModule wires the orchestrator and transport handler using explicit ports.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Organizations: deps.Organizations,
		Spaces:        deps.Spaces,
		Provisioners:  deps.Provisioners,
		Identity:      deps.Identity,
		Outbox:        deps.Outbox,
		FanOut:        fanout.Coordinator{Logger: deps.Logger},
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		PublishEvents: deps.PublishEvents,
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

// NewInMemoryModule builds a development/testing module with in-memory
// adapters: one recording provisioner per simulated downstream plus the
// identity role provisioner backed by an in-memory role store.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	identityStore := memory.NewIdentityStore()

	module := NewModule(Dependencies{
		Organizations: store,
		Spaces:        store,
		Provisioners: []ports.ContextProvisioner{
			memory.NewProvisioner("storage"),
			memory.NewProvisioner("search-index"),
			identityadapter.RoleProvisioner{Roles: identityStore},
		},
		Identity:      identityStore,
		Outbox:        store,
		Clock:         store,
		IDGenerator:   store,
		PublishEvents: true,
		Logger:        logger,
	})
	module.Store = store
	return module
}
