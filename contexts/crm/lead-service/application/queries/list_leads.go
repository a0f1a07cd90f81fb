package queries

import (
	"context"
	"log/slog"
	"strings"

	"funnel/contexts/crm/lead-service/application"
	"funnel/contexts/crm/lead-service/domain/entities"
	domainerrors "funnel/contexts/crm/lead-service/domain/errors"
	"funnel/contexts/crm/lead-service/ports"

	"golang.org/x/sync/errgroup"
)

type ListLeadsQuery struct {
	Page     int
	PageSize int
	Search   string
}

type ListLeadsResult struct {
	Items       []entities.Lead
	TotalCount  int64
	TotalPages  int
	CurrentPage int
}

type ListLeadsUseCase struct {
	Leads    ports.LeadRepository
	Identity ports.Identity
	Logger   *slog.Logger
}

func (uc ListLeadsUseCase) Execute(ctx context.Context, query ListLeadsQuery) (ListLeadsResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if _, ok, err := uc.Identity.CurrentUser(ctx); err != nil {
		return ListLeadsResult{}, err
	} else if !ok {
		return ListLeadsResult{}, domainerrors.ErrUnauthorized
	}
	if query.Page < 1 || query.PageSize < 1 {
		return ListLeadsResult{}, domainerrors.ErrInvalidPage
	}

	filter := ports.LeadFilter{Search: strings.TrimSpace(query.Search)}
	page := ports.PageRequest{
		Offset: (query.Page - 1) * query.PageSize,
		Limit:  query.PageSize,
	}

	// Page fetch and count have no ordering dependency; a concurrent insert
	// between them is accepted off-by-one drift, not a failure.
	var (
		items []entities.Lead
		total int64
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		fetched, err := uc.Leads.ListLeads(groupCtx, filter, page)
		if err != nil {
			return err
		}
		items = fetched
		return nil
	})
	group.Go(func() error {
		count, err := uc.Leads.CountLeads(groupCtx, filter)
		if err != nil {
			return err
		}
		total = count
		return nil
	})
	if err := group.Wait(); err != nil {
		return ListLeadsResult{}, err
	}

	logger.Debug("leads listed",
		"event", "leads_listed",
		"module", "crm/lead-service",
		"layer", "application",
		"page", query.Page,
		"count", len(items),
		"total", total,
	)
	return ListLeadsResult{
		Items:       items,
		TotalCount:  total,
		TotalPages:  int((total + int64(query.PageSize) - 1) / int64(query.PageSize)),
		CurrentPage: query.Page,
	}, nil
}
