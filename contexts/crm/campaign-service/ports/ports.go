package ports

import (
	"context"
	"time"

	"funnel/contexts/crm/campaign-service/domain/entities"
	"funnel/internal/shared/events"
)

type CampaignFilter struct {
	Search string
}

type PageRequest struct {
	Offset int
	Limit  int
}

type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign entities.Campaign) error
	UpdateCampaign(ctx context.Context, campaign entities.Campaign) error
	// DeleteCampaign is idempotent; the schema cascade removes join rows.
	DeleteCampaign(ctx context.Context, campaignID string) error
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter, page PageRequest) ([]entities.Campaign, error)
	CountCampaigns(ctx context.Context, filter CampaignFilter) (int64, error)
}

type MembershipRepository interface {
	// AddMembership fails with ErrLeadAlreadyInCampaign on a duplicate
	// (campaign, lead) pair.
	AddMembership(ctx context.Context, membership entities.Membership) error
	UpdateMembershipStatus(ctx context.Context, membershipID string, status entities.MembershipStatus) error
	// RemoveMembership is idempotent.
	RemoveMembership(ctx context.Context, campaignID string, leadID string) error
	ListMemberships(ctx context.Context, campaignID string) ([]entities.Membership, error)
}

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
