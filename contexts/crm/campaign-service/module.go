package campaignservice

import (
	"log/slog"

	httpadapter "funnel/contexts/crm/campaign-service/adapters/http"
	"funnel/contexts/crm/campaign-service/adapters/memory"
	"funnel/contexts/crm/campaign-service/application/commands"
	"funnel/contexts/crm/campaign-service/application/queries"
	"funnel/contexts/crm/campaign-service/domain/entities"
	"funnel/contexts/crm/campaign-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Campaigns     ports.CampaignRepository
	Memberships   ports.MembershipRepository
	Identity      ports.Identity
	Invalidations ports.InvalidationPublisher
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createCampaign := commands.CreateCampaignUseCase{
		Campaigns:     deps.Campaigns,
		Identity:      deps.Identity,
		Invalidations: deps.Invalidations,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		Logger:        deps.Logger,
	}
	updateCampaign := commands.UpdateCampaignUseCase{
		Campaigns:     deps.Campaigns,
		Identity:      deps.Identity,
		Invalidations: deps.Invalidations,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}
	deleteCampaign := commands.DeleteCampaignUseCase{
		Campaigns:     deps.Campaigns,
		Identity:      deps.Identity,
		Invalidations: deps.Invalidations,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}
	addLead := commands.AddLeadUseCase{
		Campaigns:     deps.Campaigns,
		Memberships:   deps.Memberships,
		Identity:      deps.Identity,
		Invalidations: deps.Invalidations,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		Logger:        deps.Logger,
	}
	updateMembershipStatus := commands.UpdateMembershipStatusUseCase{
		Memberships:   deps.Memberships,
		Identity:      deps.Identity,
		Invalidations: deps.Invalidations,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}
	removeLead := commands.RemoveLeadUseCase{
		Memberships:   deps.Memberships,
		Identity:      deps.Identity,
		Invalidations: deps.Invalidations,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}

	listCampaigns := queries.ListCampaignsUseCase{
		Campaigns: deps.Campaigns,
		Identity:  deps.Identity,
		Logger:    deps.Logger,
	}
	getCampaign := queries.GetCampaignUseCase{
		Campaigns: deps.Campaigns,
		Identity:  deps.Identity,
		Logger:    deps.Logger,
	}
	listMemberships := queries.ListMembershipsUseCase{
		Memberships: deps.Memberships,
		Identity:    deps.Identity,
		Logger:      deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateCampaign:         createCampaign,
			UpdateCampaign:         updateCampaign,
			DeleteCampaign:         deleteCampaign,
			AddLead:                addLead,
			UpdateMembershipStatus: updateMembershipStatus,
			RemoveLead:             removeLead,
			ListCampaigns:          listCampaigns,
			GetCampaign:            getCampaign,
			ListMemberships:        listMemberships,
			Logger:                 deps.Logger,
		},
	}
}

// NewInMemoryModule backs every port with the memory store; tests use it as
// a complete campaign service with a settable current user.
func NewInMemoryModule(seed []entities.Campaign, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Campaigns:     store,
		Memberships:   store,
		Identity:      store,
		Invalidations: store,
		Clock:         store,
		IDGenerator:   store,
		Logger:        logger,
	})
	module.Store = store
	return module
}
