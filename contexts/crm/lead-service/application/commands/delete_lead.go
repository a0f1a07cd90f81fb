package commands

import (
	"context"
	"log/slog"
	"strings"

	"funnel/contexts/crm/lead-service/application"
	domainerrors "funnel/contexts/crm/lead-service/domain/errors"
	"funnel/contexts/crm/lead-service/ports"
	"funnel/internal/shared/events"
)

type DeleteLeadUseCase struct {
	Leads         ports.LeadRepository
	Identity      ports.Identity
	Invalidations ports.InvalidationPublisher
	Clock         ports.Clock
	Logger        *slog.Logger
}

// Execute hard-deletes the lead. Deleting an absent id is a no-op; join rows
// in campaign_leads go with the lead via the schema's cascade rule.
func (uc DeleteLeadUseCase) Execute(ctx context.Context, leadID string) error {
	logger := application.ResolveLogger(uc.Logger)
	if _, ok, err := uc.Identity.CurrentUser(ctx); err != nil {
		return err
	} else if !ok {
		return domainerrors.ErrUnauthorized
	}

	if err := uc.Leads.DeleteLead(ctx, strings.TrimSpace(leadID)); err != nil {
		return err
	}

	if uc.Invalidations != nil {
		if err := uc.Invalidations.PublishInvalidation(ctx, ports.Invalidation{
			Entity:     events.EntityLeads,
			OccurredAt: uc.Clock.Now().UTC(),
		}); err != nil {
			return err
		}
	}

	logger.Info("lead deleted",
		"event", "lead_deleted",
		"module", "crm/lead-service",
		"layer", "application",
		"lead_id", strings.TrimSpace(leadID),
	)
	return nil
}
