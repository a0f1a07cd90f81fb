package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"funnel/contexts/crm/campaign-service/domain/entities"
	domainerrors "funnel/contexts/crm/campaign-service/domain/errors"
	"funnel/contexts/crm/campaign-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	campaigns   map[string]entities.Campaign
	memberships map[string]entities.Membership
	users       map[string]entities.UserSummary

	currentUser   *entities.UserSummary
	invalidations []ports.Invalidation
}

func NewStore(seed []entities.Campaign) *Store {
	campaigns := make(map[string]entities.Campaign, len(seed))
	for _, item := range seed {
		campaigns[item.CampaignID] = item
	}
	return &Store{
		campaigns:   campaigns,
		memberships: make(map[string]entities.Membership),
		users:       make(map[string]entities.UserSummary),
	}
}

func (s *Store) SeedUser(user entities.UserSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.UserID] = user
}

func (s *Store) SetCurrentUser(user entities.UserSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.UserID] = user
	s.currentUser = &user
}

func (s *Store) ClearCurrentUser() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentUser = nil
}

func (s *Store) CurrentUser(_ context.Context) (entities.UserSummary, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentUser == nil {
		return entities.UserSummary{}, false, nil
	}
	return *s.currentUser, true, nil
}

func (s *Store) CreateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; exists {
		return domainerrors.ErrInvalidCampaignInput
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) UpdateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; !exists {
		return domainerrors.ErrCampaignNotFound
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) DeleteCampaign(_ context.Context, campaignID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(campaignID)
	delete(s.campaigns, id)
	// Mirror the schema's ON DELETE CASCADE for join rows.
	for key, membership := range s.memberships {
		if membership.CampaignID == id {
			delete(s.memberships, key)
		}
	}
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return s.withCreator(item), nil
}

func (s *Store) ListCampaigns(_ context.Context, filter ports.CampaignFilter, page ports.PageRequest) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.matching(filter)
	if page.Offset >= len(items) {
		return []entities.Campaign{}, nil
	}
	end := page.Offset + page.Limit
	if end > len(items) {
		end = len(items)
	}

	result := make([]entities.Campaign, 0, end-page.Offset)
	for _, item := range items[page.Offset:end] {
		result = append(result, s.withCreator(item))
	}
	return result, nil
}

func (s *Store) CountCampaigns(_ context.Context, filter ports.CampaignFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.matching(filter))), nil
}

func (s *Store) matching(filter ports.CampaignFilter) []entities.Campaign {
	items := make([]entities.Campaign, 0, len(s.campaigns))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, campaign := range s.campaigns {
		if search != "" && !strings.Contains(strings.ToLower(campaign.Name), search) {
			continue
		}
		items = append(items, campaign)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CampaignID < items[j].CampaignID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

func (s *Store) withCreator(campaign entities.Campaign) entities.Campaign {
	if user, exists := s.users[campaign.CreatedBy]; exists {
		campaign.Creator = &user
	} else {
		campaign.Creator = nil
	}
	return campaign
}

func (s *Store) AddMembership(_ context.Context, membership entities.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.memberships {
		if existing.CampaignID == membership.CampaignID && existing.LeadID == membership.LeadID {
			return domainerrors.ErrLeadAlreadyInCampaign
		}
	}
	s.memberships[membership.MembershipID] = membership
	return nil
}

func (s *Store) UpdateMembershipStatus(_ context.Context, membershipID string, status entities.MembershipStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	membership, exists := s.memberships[strings.TrimSpace(membershipID)]
	if !exists {
		return domainerrors.ErrMembershipNotFound
	}
	membership.Status = status
	s.memberships[membership.MembershipID] = membership
	return nil
}

func (s *Store) RemoveMembership(_ context.Context, campaignID string, leadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, membership := range s.memberships {
		if membership.CampaignID == strings.TrimSpace(campaignID) && membership.LeadID == strings.TrimSpace(leadID) {
			delete(s.memberships, key)
		}
	}
	return nil
}

func (s *Store) ListMemberships(_ context.Context, campaignID string) ([]entities.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Membership, 0)
	for _, membership := range s.memberships {
		if membership.CampaignID == strings.TrimSpace(campaignID) {
			items = append(items, membership)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].AddedAt.Equal(items[j].AddedAt) {
			return items[i].MembershipID < items[j].MembershipID
		}
		return items[i].AddedAt.Before(items[j].AddedAt)
	})
	return items, nil
}

func (s *Store) PublishInvalidation(_ context.Context, event ports.Invalidation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invalidations = append(s.invalidations, event)
	return nil
}

func (s *Store) Invalidations() []ports.Invalidation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]ports.Invalidation(nil), s.invalidations...)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
