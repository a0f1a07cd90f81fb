package ports

import (
	"context"
	"time"

	"funnel/contexts/identity-access/session-service/domain/entities"
)

type SessionRepository interface {
	// UserForToken resolves a session token to its user. The second return
	// reports whether a live session exists; expired sessions resolve to
	// (zero, false, nil), not an error.
	UserForToken(ctx context.Context, token string, now time.Time) (entities.User, bool, error)
}

type Clock interface {
	Now() time.Time
}
