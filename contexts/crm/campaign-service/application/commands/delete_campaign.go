package commands

import (
	"context"
	"log/slog"
	"strings"

	"funnel/contexts/crm/campaign-service/application"
	domainerrors "funnel/contexts/crm/campaign-service/domain/errors"
	"funnel/contexts/crm/campaign-service/ports"
	"funnel/internal/shared/events"
)

type DeleteCampaignUseCase struct {
	Campaigns     ports.CampaignRepository
	Identity      ports.Identity
	Invalidations ports.InvalidationPublisher
	Clock         ports.Clock
	Logger        *slog.Logger
}

// Execute hard-deletes the campaign; join rows go with it via the schema's
// cascade rule. Deleting an absent id is a no-op.
func (uc DeleteCampaignUseCase) Execute(ctx context.Context, campaignID string) error {
	logger := application.ResolveLogger(uc.Logger)
	if _, ok, err := uc.Identity.CurrentUser(ctx); err != nil {
		return err
	} else if !ok {
		return domainerrors.ErrUnauthorized
	}

	if err := uc.Campaigns.DeleteCampaign(ctx, strings.TrimSpace(campaignID)); err != nil {
		return err
	}

	if uc.Invalidations != nil {
		if err := uc.Invalidations.PublishInvalidation(ctx, ports.Invalidation{
			Entity:     events.EntityCampaigns,
			OccurredAt: uc.Clock.Now().UTC(),
		}); err != nil {
			return err
		}
	}

	logger.Info("campaign deleted",
		"event", "campaign_deleted",
		"module", "crm/campaign-service",
		"layer", "application",
		"campaign_id", strings.TrimSpace(campaignID),
	)
	return nil
}
