package ports

import (
	"context"
	"time"

	"funnel/contexts/crm/lead-service/domain/entities"
	"funnel/internal/shared/events"
)

// LeadFilter predicates apply identically to the page fetch and the count so
// both sides of a list result stay consistent.
type LeadFilter struct {
	Search string
}

type PageRequest struct {
	Offset int
	Limit  int
}

type LeadRepository interface {
	CreateLead(ctx context.Context, lead entities.Lead) error
	// UpdateLead overwrites the stored row with the supplied entity and
	// fails with ErrLeadNotFound when no row matches.
	UpdateLead(ctx context.Context, lead entities.Lead) error
	// DeleteLead is idempotent: deleting an absent id is not an error.
	DeleteLead(ctx context.Context, leadID string) error
	GetLead(ctx context.Context, leadID string) (entities.Lead, error)
	ListLeads(ctx context.Context, filter LeadFilter, page PageRequest) ([]entities.Lead, error)
	CountLeads(ctx context.Context, filter LeadFilter) (int64, error)
}

// Identity is the auth collaborator boundary. The second return reports
// whether a caller is resolved; operations treat false as an authorization
// failure before any store access.
type Identity interface {
	CurrentUser(ctx context.Context) (entities.UserSummary, bool, error)
}

type Invalidation = events.Invalidation

type InvalidationPublisher interface {
	PublishInvalidation(ctx context.Context, event Invalidation) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
