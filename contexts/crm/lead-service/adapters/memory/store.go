package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"funnel/contexts/crm/lead-service/domain/entities"
	domainerrors "funnel/contexts/crm/lead-service/domain/errors"
	"funnel/contexts/crm/lead-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	leads map[string]entities.Lead
	users map[string]entities.UserSummary

	currentUser   *entities.UserSummary
	invalidations []ports.Invalidation
}

func NewStore(seed []entities.Lead) *Store {
	leads := make(map[string]entities.Lead, len(seed))
	for _, item := range seed {
		leads[item.LeadID] = item
	}
	return &Store{
		leads: leads,
		users: make(map[string]entities.UserSummary),
	}
}

func (s *Store) SeedUser(user entities.UserSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.UserID] = user
}

// SetCurrentUser makes every subsequent operation run as the given caller.
func (s *Store) SetCurrentUser(user entities.UserSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.UserID] = user
	s.currentUser = &user
}

// ClearCurrentUser simulates an unauthenticated caller.
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

func (s *Store) CreateLead(_ context.Context, lead entities.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.leads[lead.LeadID]; exists {
		return domainerrors.ErrInvalidLeadInput
	}
	s.leads[lead.LeadID] = lead
	return nil
}

func (s *Store) UpdateLead(_ context.Context, lead entities.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.leads[lead.LeadID]; !exists {
		return domainerrors.ErrLeadNotFound
	}
	s.leads[lead.LeadID] = lead
	return nil
}

func (s *Store) DeleteLead(_ context.Context, leadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.leads, strings.TrimSpace(leadID))
	return nil
}

func (s *Store) GetLead(_ context.Context, leadID string) (entities.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.leads[strings.TrimSpace(leadID)]
	if !exists {
		return entities.Lead{}, domainerrors.ErrLeadNotFound
	}
	return s.withAssignedUser(item), nil
}

func (s *Store) ListLeads(_ context.Context, filter ports.LeadFilter, page ports.PageRequest) ([]entities.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.matching(filter)
	if page.Offset >= len(items) {
		return []entities.Lead{}, nil
	}
	end := page.Offset + page.Limit
	if end > len(items) {
		end = len(items)
	}

	result := make([]entities.Lead, 0, end-page.Offset)
	for _, item := range items[page.Offset:end] {
		result = append(result, s.withAssignedUser(item))
	}
	return result, nil
}

func (s *Store) CountLeads(_ context.Context, filter ports.LeadFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.matching(filter))), nil
}

func (s *Store) matching(filter ports.LeadFilter) []entities.Lead {
	items := make([]entities.Lead, 0, len(s.leads))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, lead := range s.leads {
		if search != "" && !strings.Contains(strings.ToLower(lead.Name), search) {
			continue
		}
		items = append(items, lead)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].LeadID < items[j].LeadID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

func (s *Store) withAssignedUser(lead entities.Lead) entities.Lead {
	if lead.AssignedTo == "" {
		lead.AssignedUser = nil
		return lead
	}
	if user, exists := s.users[lead.AssignedTo]; exists {
		lead.AssignedUser = &user
	} else {
		lead.AssignedUser = nil
	}
	return lead
}

func (s *Store) PublishInvalidation(_ context.Context, event ports.Invalidation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invalidations = append(s.invalidations, event)
	return nil
}

// Invalidations exposes the recorded staleness signals for assertions.
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
