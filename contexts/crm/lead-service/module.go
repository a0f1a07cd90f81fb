package leadservice

import (
	"log/slog"

	httpadapter "funnel/contexts/crm/lead-service/adapters/http"
	"funnel/contexts/crm/lead-service/adapters/memory"
	"funnel/contexts/crm/lead-service/application/commands"
	"funnel/contexts/crm/lead-service/application/queries"
	"funnel/contexts/crm/lead-service/domain/entities"
	"funnel/contexts/crm/lead-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Leads         ports.LeadRepository
	Identity      ports.Identity
	Invalidations ports.InvalidationPublisher
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createLead := commands.CreateLeadUseCase{
		Leads:         deps.Leads,
		Identity:      deps.Identity,
		Invalidations: deps.Invalidations,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		Logger:        deps.Logger,
	}
	updateLead := commands.UpdateLeadUseCase{
		Leads:         deps.Leads,
		Identity:      deps.Identity,
		Invalidations: deps.Invalidations,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}
	deleteLead := commands.DeleteLeadUseCase{
		Leads:         deps.Leads,
		Identity:      deps.Identity,
		Invalidations: deps.Invalidations,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}

	listLeads := queries.ListLeadsUseCase{
		Leads:    deps.Leads,
		Identity: deps.Identity,
		Logger:   deps.Logger,
	}
	getLead := queries.GetLeadUseCase{
		Leads:    deps.Leads,
		Identity: deps.Identity,
		Logger:   deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateLead: createLead,
			UpdateLead: updateLead,
			DeleteLead: deleteLead,
			ListLeads:  listLeads,
			GetLead:    getLead,
			Logger:     deps.Logger,
		},
	}
}

// NewInMemoryModule backs every port with the memory store; tests use it as
// a complete lead service with a settable current user.
func NewInMemoryModule(seed []entities.Lead, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Leads:         store,
		Identity:      store,
		Invalidations: store,
		Clock:         store,
		IDGenerator:   store,
		Logger:        logger,
	})
	module.Store = store
	return module
}
