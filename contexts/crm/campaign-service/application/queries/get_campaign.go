package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"funnel/contexts/crm/campaign-service/domain/entities"
	domainerrors "funnel/contexts/crm/campaign-service/domain/errors"
	"funnel/contexts/crm/campaign-service/ports"
)

type GetCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Identity  ports.Identity
	Logger    *slog.Logger
}

// Execute returns nil without error when no campaign matches the id.
func (uc GetCampaignUseCase) Execute(ctx context.Context, campaignID string) (*entities.Campaign, error) {
	if _, ok, err := uc.Identity.CurrentUser(ctx); err != nil {
		return nil, err
	} else if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		if errors.Is(err, domainerrors.ErrCampaignNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

type ListMembershipsUseCase struct {
	Memberships ports.MembershipRepository
	Identity    ports.Identity
	Logger      *slog.Logger
}

func (uc ListMembershipsUseCase) Execute(ctx context.Context, campaignID string) ([]entities.Membership, error) {
	if _, ok, err := uc.Identity.CurrentUser(ctx); err != nil {
		return nil, err
	} else if !ok {
		return nil, domainerrors.ErrUnauthorized
	}
	return uc.Memberships.ListMemberships(ctx, strings.TrimSpace(campaignID))
}
