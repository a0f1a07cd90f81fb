package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"funnel/contexts/crm/campaign-service/application"
	"funnel/contexts/crm/campaign-service/domain/entities"
	domainerrors "funnel/contexts/crm/campaign-service/domain/errors"
	"funnel/contexts/crm/campaign-service/ports"
	"funnel/internal/shared/events"
)

type CreateCampaignCommand struct {
	Name        string
	Description string
	Status      string
	Type        string
	Budget      *int
	StartDate   *time.Time
	EndDate     *time.Time
	Metrics     entities.Metrics
}

type CreateCampaignUseCase struct {
	Campaigns     ports.CampaignRepository
	Identity      ports.Identity
	Invalidations ports.InvalidationPublisher
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	user, ok, err := uc.Identity.CurrentUser(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	if !ok {
		return entities.Campaign{}, domainerrors.ErrUnauthorized
	}

	campaignID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}

	now := uc.Clock.Now().UTC()
	campaign := entities.Campaign{
		CampaignID:  campaignID,
		Name:        strings.TrimSpace(cmd.Name),
		Description: cmd.Description,
		Status:      entities.CampaignStatus(strings.TrimSpace(cmd.Status)),
		Type:        entities.CampaignType(strings.TrimSpace(cmd.Type)),
		Budget:      cmd.Budget,
		StartDate:   cmd.StartDate,
		EndDate:     cmd.EndDate,
		Metrics:     cmd.Metrics,
		CreatedBy:   user.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Creator:     &user,
	}
	if campaign.Status == "" {
		campaign.Status = entities.CampaignStatusDraft
	}
	if !campaign.ValidateBasics() {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}

	if err := uc.Campaigns.CreateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	if uc.Invalidations != nil {
		if err := uc.Invalidations.PublishInvalidation(ctx, ports.Invalidation{
			Entity:     events.EntityCampaigns,
			OccurredAt: now,
		}); err != nil {
			return entities.Campaign{}, err
		}
	}

	logger.Info("campaign created",
		"event", "campaign_created",
		"module", "crm/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"created_by", campaign.CreatedBy,
	)
	return campaign, nil
}
