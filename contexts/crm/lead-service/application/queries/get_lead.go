package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"funnel/contexts/crm/lead-service/domain/entities"
	domainerrors "funnel/contexts/crm/lead-service/domain/errors"
	"funnel/contexts/crm/lead-service/ports"
)

type GetLeadUseCase struct {
	Leads    ports.LeadRepository
	Identity ports.Identity
	Logger   *slog.Logger
}

// Execute returns nil without error when no lead matches: not-found is a
// normal outcome of a by-id read, unlike the unauthorized case.
func (uc GetLeadUseCase) Execute(ctx context.Context, leadID string) (*entities.Lead, error) {
	if _, ok, err := uc.Identity.CurrentUser(ctx); err != nil {
		return nil, err
	} else if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	lead, err := uc.Leads.GetLead(ctx, strings.TrimSpace(leadID))
	if err != nil {
		if errors.Is(err, domainerrors.ErrLeadNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lead, nil
}
