package sessionservice

import (
	"log/slog"

	"funnel/contexts/identity-access/session-service/adapters/memory"
	"funnel/contexts/identity-access/session-service/application"
	"funnel/contexts/identity-access/session-service/ports"
)

type Module struct {
	Resolver application.Resolver
	Store    *memory.Store
}

type Dependencies struct {
	Sessions ports.SessionRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Resolver: application.Resolver{
			Sessions: deps.Sessions,
			Clock:    deps.Clock,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Sessions: store,
		Clock:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
