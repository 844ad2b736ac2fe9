package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	principal "orbit/contexts/identity-access/principal-service"
	principalmemory "orbit/contexts/identity-access/principal-service/adapters/memory"
	"orbit/contexts/identity-access/principal-service/adapters/token"
	lifecycle "orbit/contexts/tenancy/lifecycle-service"
	identityadapter "orbit/contexts/tenancy/lifecycle-service/adapters/identity"
	tenancymemory "orbit/contexts/tenancy/lifecycle-service/adapters/memory"
	postgresadapter "orbit/contexts/tenancy/lifecycle-service/adapters/postgres"
	tenancyapp "orbit/contexts/tenancy/lifecycle-service/application"
	workerapp "orbit/contexts/tenancy/lifecycle-service/application/workers"
	"orbit/contexts/tenancy/lifecycle-service/ports"
	"orbit/internal/platform/config"
	"orbit/internal/platform/db"
	"orbit/internal/platform/httpserver"
	"orbit/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	bus          *messaging.Kafka
	outboxRelay  workerapp.OutboxRelay
	auditor      workerapp.LifecycleAuditor
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
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)

	// Role names live in the identity provider; the in-memory store stands in
	// while the external IdP adapter is finalized, mirroring the in-process
	// message bus in platform/messaging.
	identityStore := tenancymemory.NewIdentityStore()

	lifecycleModule := lifecycle.NewModule(lifecycle.Dependencies{
		Organizations: repo,
		Spaces:        repo,
		Provisioners: []ports.ContextProvisioner{
			identityadapter.RoleProvisioner{Roles: identityStore},
		},
		Identity:      identityStore,
		Outbox:        repo,
		Clock:         postgresadapter.SystemClock{},
		IDGenerator:   postgresadapter.UUIDGenerator{},
		PublishEvents: cfg.EnableEventPublishing,
		Logger:        logger,
	})

	principalStore := principalmemory.NewStore()
	principalModule := principal.NewModule(principal.Dependencies{
		Authenticator: token.Parser{
			Secret: []byte(cfg.JWTSecret),
			Issuer: cfg.JWTIssuer,
			Logger: logger,
		},
		Requests:    principalStore,
		Roles:       principalStore,
		Clock:       postgresadapter.SystemClock{},
		IDGenerator: postgresadapter.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(lifecycleModule, principalModule, logger, normalizeAddr(cfg.HTTPPort))
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

	repo := postgresadapter.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		bus:      kafka,
		auditor:  workerapp.LifecycleAuditor{Logger: logger},
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     postgresadapter.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		pollInterval: cfg.OutboxRelayInterval,
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
	if err := w.bus.Subscribe(ctx, tenancyapp.TopicLifecycle, "orbit-lifecycle-audit", w.auditor.Handle); err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
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
