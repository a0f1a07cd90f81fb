package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"funnel/contexts/crm/lead-service/application"
	"funnel/contexts/crm/lead-service/domain/entities"
	domainerrors "funnel/contexts/crm/lead-service/domain/errors"
	"funnel/contexts/crm/lead-service/ports"
	"funnel/internal/shared/events"
)

type CreateLeadCommand struct {
	Name            string
	Email           string
	Phone           string
	Company         string
	Status          string
	Source          string
	Value           *int
	Notes           string
	Tags            []string
	CampaignID      string
	LastContactDate *time.Time
}

type CreateLeadUseCase struct {
	Leads         ports.LeadRepository
	Identity      ports.Identity
	Invalidations ports.InvalidationPublisher
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func (uc CreateLeadUseCase) Execute(ctx context.Context, cmd CreateLeadCommand) (entities.Lead, error) {
	logger := application.ResolveLogger(uc.Logger)
	user, ok, err := uc.Identity.CurrentUser(ctx)
	if err != nil {
		return entities.Lead{}, err
	}
	if !ok {
		return entities.Lead{}, domainerrors.ErrUnauthorized
	}

	leadID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Lead{}, err
	}

	now := uc.Clock.Now().UTC()
	lead := entities.Lead{
		LeadID:          leadID,
		Name:            strings.TrimSpace(cmd.Name),
		Email:           strings.TrimSpace(cmd.Email),
		Phone:           strings.TrimSpace(cmd.Phone),
		Company:         strings.TrimSpace(cmd.Company),
		Status:          entities.LeadStatus(strings.TrimSpace(cmd.Status)),
		Source:          strings.TrimSpace(cmd.Source),
		Value:           cmd.Value,
		Notes:           cmd.Notes,
		Tags:            append([]string(nil), cmd.Tags...),
		AssignedTo:      user.UserID,
		CampaignID:      strings.TrimSpace(cmd.CampaignID),
		LastContactDate: cmd.LastContactDate,
		CreatedAt:       now,
		UpdatedAt:       now,
		AssignedUser:    &user,
	}
	if lead.Status == "" {
		lead.Status = entities.LeadStatusNew
	}
	if !lead.ValidateBasics() {
		return entities.Lead{}, domainerrors.ErrInvalidLeadInput
	}

	if err := uc.Leads.CreateLead(ctx, lead); err != nil {
		return entities.Lead{}, err
	}

	if uc.Invalidations != nil {
		if err := uc.Invalidations.PublishInvalidation(ctx, ports.Invalidation{
			Entity:     events.EntityLeads,
			OccurredAt: now,
		}); err != nil {
			return entities.Lead{}, err
		}
	}

	logger.Info("lead created",
		"event", "lead_created",
		"module", "crm/lead-service",
		"layer", "application",
		"lead_id", lead.LeadID,
		"assigned_to", lead.AssignedTo,
	)
	return lead, nil
}
