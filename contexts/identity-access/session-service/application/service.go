package application

import (
	"context"
	"log/slog"

	"funnel/contexts/identity-access/session-service/domain/entities"
	"funnel/contexts/identity-access/session-service/ports"
)

// Resolver is the whole public surface of the auth collaborator:
// getCurrentUser over ambient session state. Credential storage, token
// issuance, and OAuth handshakes stay outside this module.
type Resolver struct {
	Sessions ports.SessionRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

// CurrentUser resolves the caller's identity from the session token carried
// in ctx. A missing, unknown, or expired token resolves to (zero, false,
// nil); callers decide whether that is an authorization failure.
func (r Resolver) CurrentUser(ctx context.Context) (entities.User, bool, error) {
	token, ok := SessionTokenFromContext(ctx)
	if !ok {
		return entities.User{}, false, nil
	}

	user, found, err := r.Sessions.UserForToken(ctx, token, r.Clock.Now().UTC())
	if err != nil {
		return entities.User{}, false, err
	}
	if !found {
		return entities.User{}, false, nil
	}

	logger := ResolveLogger(r.Logger)
	logger.Debug("session resolved",
		"event", "session_resolved",
		"module", "identity-access/session-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return user, true, nil
}
