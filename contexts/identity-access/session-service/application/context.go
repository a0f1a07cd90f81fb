package application

import "context"

type sessionTokenKey struct{}

// WithSessionToken stores the caller's session token as ambient request
// state. The transport sets it once; every operation downstream resolves the
// current user from it.
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionTokenKey{}, token)
}

func SessionTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(sessionTokenKey{}).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
