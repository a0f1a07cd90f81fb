package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	campaignservice "funnel/contexts/crm/campaign-service"
	campaignpostgres "funnel/contexts/crm/campaign-service/adapters/postgres"
	campaignentities "funnel/contexts/crm/campaign-service/domain/entities"
	leadservice "funnel/contexts/crm/lead-service"
	leadpostgres "funnel/contexts/crm/lead-service/adapters/postgres"
	leadentities "funnel/contexts/crm/lead-service/domain/entities"
	sessionservice "funnel/contexts/identity-access/session-service"
	sessionpostgres "funnel/contexts/identity-access/session-service/adapters/postgres"
	sessionapp "funnel/contexts/identity-access/session-service/application"
	"funnel/internal/platform/config"
	"funnel/internal/platform/db"
	"funnel/internal/platform/httpserver"
	"funnel/internal/platform/messaging"
	"funnel/internal/shared/events"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	bus      *messaging.Bus
	logger   *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		_ = pg.Close()
		return nil, err
	}

	sessionModule := sessionservice.NewModule(sessionservice.Dependencies{
		Sessions: sessionpostgres.NewRepository(pg.DB, logger),
		Clock:    sessionpostgres.SystemClock{},
		Logger:   logger,
	})

	bus := messaging.NewBus(logger)

	leadModule := leadservice.NewModule(leadservice.Dependencies{
		Leads:         leadpostgres.NewRepository(pg.DB, logger),
		Identity:      leadIdentity{resolver: sessionModule.Resolver},
		Invalidations: bus,
		Clock:         leadpostgres.SystemClock{},
		IDGenerator:   leadpostgres.UUIDGenerator{},
		Logger:        logger,
	})

	campaignRepo := campaignpostgres.NewRepository(pg.DB, logger)
	campaignModule := campaignservice.NewModule(campaignservice.Dependencies{
		Campaigns:     campaignRepo,
		Memberships:   campaignRepo,
		Identity:      campaignIdentity{resolver: sessionModule.Resolver},
		Invalidations: bus,
		Clock:         campaignpostgres.SystemClock{},
		IDGenerator:   campaignpostgres.UUIDGenerator{},
		Logger:        logger,
	})

	server := httpserver.New(
		leadModule,
		campaignModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
		cfg.SessionHeader,
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		bus:      bus,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	// Staleness signals are logged at the edge of the process; dashboards
	// poll the lists again after seeing one.
	for _, entity := range []string{events.EntityLeads, events.EntityCampaigns} {
		a.bus.Subscribe(ctx, entity, func(_ context.Context, event events.Invalidation) {
			a.logger.Info("collection invalidated",
				"event", "collection_invalidated",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"entity", event.Entity,
			)
		})
	}

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

// leadIdentity narrows the session resolver to the lead module's view of a
// user.
type leadIdentity struct {
	resolver sessionapp.Resolver
}

func (a leadIdentity) CurrentUser(ctx context.Context) (leadentities.UserSummary, bool, error) {
	user, ok, err := a.resolver.CurrentUser(ctx)
	if err != nil || !ok {
		return leadentities.UserSummary{}, false, err
	}
	return leadentities.UserSummary{
		UserID: user.UserID,
		Name:   user.Name,
		Email:  user.Email,
	}, true, nil
}

type campaignIdentity struct {
	resolver sessionapp.Resolver
}

func (a campaignIdentity) CurrentUser(ctx context.Context) (campaignentities.UserSummary, bool, error) {
	user, ok, err := a.resolver.CurrentUser(ctx)
	if err != nil || !ok {
		return campaignentities.UserSummary{}, false, err
	}
	return campaignentities.UserSummary{
		UserID: user.UserID,
		Name:   user.Name,
		Email:  user.Email,
	}, true, nil
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
