package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"funnel/contexts/identity-access/session-service/domain/entities"
)

type Store struct {
	mu sync.RWMutex

	users    map[string]entities.User
	sessions map[string]entities.Session
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]entities.User),
		sessions: make(map[string]entities.Session),
	}
}

func (s *Store) SeedUser(user entities.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.UserID] = user
}

func (s *Store) SeedSession(session entities.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.Token] = session
}

func (s *Store) UserForToken(_ context.Context, token string, now time.Time) (entities.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[strings.TrimSpace(token)]
	if !exists || session.Expired(now) {
		return entities.User{}, false, nil
	}
	user, exists := s.users[session.UserID]
	if !exists {
		return entities.User{}, false, nil
	}
	return user, true, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
