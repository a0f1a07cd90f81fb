package application_test

import (
	"context"
	"testing"
	"time"

	sessionservice "funnel/contexts/identity-access/session-service"
	"funnel/contexts/identity-access/session-service/application"
	"funnel/contexts/identity-access/session-service/domain/entities"
)

func seededModule(t *testing.T) sessionservice.Module {
	t.Helper()
	module := sessionservice.NewInMemoryModule(nil)
	module.Store.SeedUser(entities.User{
		UserID: "user-1",
		Name:   "Ada Alvarez",
		Email:  "ada@example.com",
	})
	module.Store.SeedSession(entities.Session{
		SessionID: "sess-1",
		UserID:    "user-1",
		Token:     "token-live",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	module.Store.SeedSession(entities.Session{
		SessionID: "sess-2",
		UserID:    "user-1",
		Token:     "token-stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	return module
}

func TestCurrentUserWithoutTokenResolvesAnonymous(t *testing.T) {
	module := seededModule(t)

	_, ok, err := module.Resolver.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("resolve without token errored: %v", err)
	}
	if ok {
		t.Fatalf("expected no identity without a token")
	}
}

func TestCurrentUserResolvesLiveSession(t *testing.T) {
	module := seededModule(t)

	ctx := application.WithSessionToken(context.Background(), "token-live")
	user, ok, err := module.Resolver.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !ok || user.UserID != "user-1" {
		t.Fatalf("expected user-1, got %+v ok=%v", user, ok)
	}
}

func TestCurrentUserRejectsExpiredSession(t *testing.T) {
	module := seededModule(t)

	ctx := application.WithSessionToken(context.Background(), "token-stale")
	_, ok, err := module.Resolver.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("resolve errored: %v", err)
	}
	if ok {
		t.Fatalf("expired session must not resolve an identity")
	}
}

func TestCurrentUserUnknownToken(t *testing.T) {
	module := seededModule(t)

	ctx := application.WithSessionToken(context.Background(), "token-forged")
	_, ok, err := module.Resolver.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("resolve errored: %v", err)
	}
	if ok {
		t.Fatalf("unknown token must not resolve an identity")
	}
}
