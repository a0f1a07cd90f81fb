package commands

import (
	"context"
	"log/slog"
	"strings"

	"funnel/contexts/crm/campaign-service/application"
	"funnel/contexts/crm/campaign-service/domain/entities"
	domainerrors "funnel/contexts/crm/campaign-service/domain/errors"
	"funnel/contexts/crm/campaign-service/ports"
	"funnel/internal/shared/events"
)

// Membership commands manage campaign_leads rows only. The stored aggregate
// counters on campaigns (total_leads, success_rate, progress) are not
// recomputed here; they remain independent fields.

type AddLeadCommand struct {
	CampaignID string
	LeadID     string
}

type AddLeadUseCase struct {
	Campaigns     ports.CampaignRepository
	Memberships   ports.MembershipRepository
	Identity      ports.Identity
	Invalidations ports.InvalidationPublisher
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func (uc AddLeadUseCase) Execute(ctx context.Context, cmd AddLeadCommand) (entities.Membership, error) {
	logger := application.ResolveLogger(uc.Logger)
	if _, ok, err := uc.Identity.CurrentUser(ctx); err != nil {
		return entities.Membership{}, err
	} else if !ok {
		return entities.Membership{}, domainerrors.ErrUnauthorized
	}

	if _, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID)); err != nil {
		return entities.Membership{}, err
	}

	membershipID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Membership{}, err
	}

	membership := entities.Membership{
		MembershipID: membershipID,
		CampaignID:   strings.TrimSpace(cmd.CampaignID),
		LeadID:       strings.TrimSpace(cmd.LeadID),
		Status:       entities.MembershipStatusAdded,
		AddedAt:      uc.Clock.Now().UTC(),
	}
	if membership.LeadID == "" {
		return entities.Membership{}, domainerrors.ErrInvalidCampaignInput
	}

	if err := uc.Memberships.AddMembership(ctx, membership); err != nil {
		return entities.Membership{}, err
	}

	if uc.Invalidations != nil {
		if err := uc.Invalidations.PublishInvalidation(ctx, ports.Invalidation{
			Entity:     events.EntityCampaigns,
			OccurredAt: membership.AddedAt,
		}); err != nil {
			return entities.Membership{}, err
		}
	}

	logger.Info("lead added to campaign",
		"event", "campaign_lead_added",
		"module", "crm/campaign-service",
		"layer", "application",
		"campaign_id", membership.CampaignID,
		"lead_id", membership.LeadID,
	)
	return membership, nil
}

type UpdateMembershipStatusUseCase struct {
	Memberships   ports.MembershipRepository
	Identity      ports.Identity
	Invalidations ports.InvalidationPublisher
	Clock         ports.Clock
	Logger        *slog.Logger
}

func (uc UpdateMembershipStatusUseCase) Execute(ctx context.Context, membershipID string, status string) error {
	if _, ok, err := uc.Identity.CurrentUser(ctx); err != nil {
		return err
	} else if !ok {
		return domainerrors.ErrUnauthorized
	}

	parsed := entities.MembershipStatus(strings.TrimSpace(status))
	if !entities.IsSupportedMembershipStatus(parsed) {
		return domainerrors.ErrInvalidMembershipStatus
	}

	if err := uc.Memberships.UpdateMembershipStatus(ctx, strings.TrimSpace(membershipID), parsed); err != nil {
		return err
	}

	if uc.Invalidations != nil {
		return uc.Invalidations.PublishInvalidation(ctx, ports.Invalidation{
			Entity:     events.EntityCampaigns,
			OccurredAt: uc.Clock.Now().UTC(),
		})
	}
	return nil
}

type RemoveLeadUseCase struct {
	Memberships   ports.MembershipRepository
	Identity      ports.Identity
	Invalidations ports.InvalidationPublisher
	Clock         ports.Clock
	Logger        *slog.Logger
}

// Execute is idempotent: removing a lead that is not in the campaign leaves
// the store unchanged.
func (uc RemoveLeadUseCase) Execute(ctx context.Context, campaignID string, leadID string) error {
	if _, ok, err := uc.Identity.CurrentUser(ctx); err != nil {
		return err
	} else if !ok {
		return domainerrors.ErrUnauthorized
	}

	if err := uc.Memberships.RemoveMembership(ctx, strings.TrimSpace(campaignID), strings.TrimSpace(leadID)); err != nil {
		return err
	}

	if uc.Invalidations != nil {
		return uc.Invalidations.PublishInvalidation(ctx, ports.Invalidation{
			Entity:     events.EntityCampaigns,
			OccurredAt: uc.Clock.Now().UTC(),
		})
	}
	return nil
}
