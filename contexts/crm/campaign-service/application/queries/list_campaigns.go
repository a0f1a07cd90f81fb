package queries

import (
	"context"
	"log/slog"
	"strings"

	"funnel/contexts/crm/campaign-service/application"
	"funnel/contexts/crm/campaign-service/domain/entities"
	domainerrors "funnel/contexts/crm/campaign-service/domain/errors"
	"funnel/contexts/crm/campaign-service/ports"

	"golang.org/x/sync/errgroup"
)

type ListCampaignsQuery struct {
	Page     int
	PageSize int
	Search   string
}

type ListCampaignsResult struct {
	Items       []entities.Campaign
	TotalCount  int64
	TotalPages  int
	CurrentPage int
}

type ListCampaignsUseCase struct {
	Campaigns ports.CampaignRepository
	Identity  ports.Identity
	Logger    *slog.Logger
}

func (uc ListCampaignsUseCase) Execute(ctx context.Context, query ListCampaignsQuery) (ListCampaignsResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if _, ok, err := uc.Identity.CurrentUser(ctx); err != nil {
		return ListCampaignsResult{}, err
	} else if !ok {
		return ListCampaignsResult{}, domainerrors.ErrUnauthorized
	}
	if query.Page < 1 || query.PageSize < 1 {
		return ListCampaignsResult{}, domainerrors.ErrInvalidPage
	}

	filter := ports.CampaignFilter{Search: strings.TrimSpace(query.Search)}
	page := ports.PageRequest{
		Offset: (query.Page - 1) * query.PageSize,
		Limit:  query.PageSize,
	}

	var (
		items []entities.Campaign
		total int64
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		fetched, err := uc.Campaigns.ListCampaigns(groupCtx, filter, page)
		if err != nil {
			return err
		}
		items = fetched
		return nil
	})
	group.Go(func() error {
		count, err := uc.Campaigns.CountCampaigns(groupCtx, filter)
		if err != nil {
			return err
		}
		total = count
		return nil
	})
	if err := group.Wait(); err != nil {
		return ListCampaignsResult{}, err
	}

	logger.Debug("campaigns listed",
		"event", "campaigns_listed",
		"module", "crm/campaign-service",
		"layer", "application",
		"page", query.Page,
		"count", len(items),
		"total", total,
	)
	return ListCampaignsResult{
		Items:       items,
		TotalCount:  total,
		TotalPages:  int((total + int64(query.PageSize) - 1) / int64(query.PageSize)),
		CurrentPage: query.Page,
	}, nil
}
