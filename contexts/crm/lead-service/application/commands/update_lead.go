package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"funnel/contexts/crm/lead-service/application"
	"funnel/contexts/crm/lead-service/domain/entities"
	domainerrors "funnel/contexts/crm/lead-service/domain/errors"
	"funnel/contexts/crm/lead-service/ports"
	"funnel/internal/shared/events"
)

// UpdateLeadCommand is a partial patch: only non-nil fields are written.
// The id and creation timestamp are never mutable.
type UpdateLeadCommand struct {
	LeadID          string
	Name            *string
	Email           *string
	Phone           *string
	Company         *string
	Status          *string
	Source          *string
	Value           *int
	Notes           *string
	Tags            *[]string
	LastContactDate *time.Time
}

type UpdateLeadUseCase struct {
	Leads         ports.LeadRepository
	Identity      ports.Identity
	Invalidations ports.InvalidationPublisher
	Clock         ports.Clock
	Logger        *slog.Logger
}

// Execute returns nil without error when the id matches no row; the caller
// decides whether that is a not-found condition.
func (uc UpdateLeadUseCase) Execute(ctx context.Context, cmd UpdateLeadCommand) (*entities.Lead, error) {
	logger := application.ResolveLogger(uc.Logger)
	if _, ok, err := uc.Identity.CurrentUser(ctx); err != nil {
		return nil, err
	} else if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	lead, err := uc.Leads.GetLead(ctx, strings.TrimSpace(cmd.LeadID))
	if err != nil {
		if errors.Is(err, domainerrors.ErrLeadNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if cmd.Name != nil {
		lead.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Email != nil {
		lead.Email = strings.TrimSpace(*cmd.Email)
	}
	if cmd.Phone != nil {
		lead.Phone = strings.TrimSpace(*cmd.Phone)
	}
	if cmd.Company != nil {
		lead.Company = strings.TrimSpace(*cmd.Company)
	}
	if cmd.Status != nil {
		lead.Status = entities.LeadStatus(strings.TrimSpace(*cmd.Status))
	}
	if cmd.Source != nil {
		lead.Source = strings.TrimSpace(*cmd.Source)
	}
	if cmd.Value != nil {
		lead.Value = cmd.Value
	}
	if cmd.Notes != nil {
		lead.Notes = *cmd.Notes
	}
	if cmd.Tags != nil {
		lead.Tags = append([]string(nil), (*cmd.Tags)...)
	}
	if cmd.LastContactDate != nil {
		lead.LastContactDate = cmd.LastContactDate
	}
	lead.UpdatedAt = uc.Clock.Now().UTC()

	if !lead.ValidateBasics() {
		return nil, domainerrors.ErrInvalidLeadInput
	}

	if err := uc.Leads.UpdateLead(ctx, lead); err != nil {
		if errors.Is(err, domainerrors.ErrLeadNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if uc.Invalidations != nil {
		if err := uc.Invalidations.PublishInvalidation(ctx, ports.Invalidation{
			Entity:     events.EntityLeads,
			OccurredAt: lead.UpdatedAt,
		}); err != nil {
			return nil, err
		}
	}

	logger.Info("lead updated",
		"event", "lead_updated",
		"module", "crm/lead-service",
		"layer", "application",
		"lead_id", lead.LeadID,
	)
	return &lead, nil
}
