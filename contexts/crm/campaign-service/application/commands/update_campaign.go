package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"funnel/contexts/crm/campaign-service/application"
	"funnel/contexts/crm/campaign-service/domain/entities"
	domainerrors "funnel/contexts/crm/campaign-service/domain/errors"
	"funnel/contexts/crm/campaign-service/ports"
	"funnel/internal/shared/events"
)

// UpdateCampaignCommand is a partial patch: only non-nil fields are written.
// The id, creator, and creation timestamp are never mutable.
type UpdateCampaignCommand struct {
	CampaignID  string
	Name        *string
	Description *string
	Status      *string
	Type        *string
	Budget      *int
	StartDate   *time.Time
	EndDate     *time.Time
	Metrics     *entities.Metrics
}

type UpdateCampaignUseCase struct {
	Campaigns     ports.CampaignRepository
	Identity      ports.Identity
	Invalidations ports.InvalidationPublisher
	Clock         ports.Clock
	Logger        *slog.Logger
}

// Execute returns nil without error when the id matches no row.
func (uc UpdateCampaignUseCase) Execute(ctx context.Context, cmd UpdateCampaignCommand) (*entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	if _, ok, err := uc.Identity.CurrentUser(ctx); err != nil {
		return nil, err
	} else if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		if errors.Is(err, domainerrors.ErrCampaignNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if cmd.Name != nil {
		campaign.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Description != nil {
		campaign.Description = *cmd.Description
	}
	if cmd.Status != nil {
		campaign.Status = entities.CampaignStatus(strings.TrimSpace(*cmd.Status))
	}
	if cmd.Type != nil {
		campaign.Type = entities.CampaignType(strings.TrimSpace(*cmd.Type))
	}
	if cmd.Budget != nil {
		campaign.Budget = cmd.Budget
	}
	if cmd.StartDate != nil {
		campaign.StartDate = cmd.StartDate
	}
	if cmd.EndDate != nil {
		campaign.EndDate = cmd.EndDate
	}
	if cmd.Metrics != nil {
		campaign.Metrics = *cmd.Metrics
	}
	campaign.UpdatedAt = uc.Clock.Now().UTC()

	if !campaign.ValidateBasics() {
		return nil, domainerrors.ErrInvalidCampaignInput
	}

	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		if errors.Is(err, domainerrors.ErrCampaignNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if uc.Invalidations != nil {
		if err := uc.Invalidations.PublishInvalidation(ctx, ports.Invalidation{
			Entity:     events.EntityCampaigns,
			OccurredAt: campaign.UpdatedAt,
		}); err != nil {
			return nil, err
		}
	}

	logger.Info("campaign updated",
		"event", "campaign_updated",
		"module", "crm/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
	)
	return &campaign, nil
}
