package auth

import (
	"context"
	"errors"
)

var (
	ErrNoSession     = errors.New("no authenticated session")
	ErrMissingSecret = errors.New("JWT secret is not set")
	ErrInvalidToken  = errors.New("invalid token")
)

// Session is the authenticated user behind a request.
type Session struct {
	UserID string
	Email  string
}

type ctxKey string

const sessionKey ctxKey = "session"

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok && s.UserID != ""
}

// CurrentSession returns the session attached to ctx or ErrNoSession.
func CurrentSession(ctx context.Context) (Session, error) {
	s, ok := SessionFrom(ctx)
	if !ok {
		return Session{}, ErrNoSession
	}
	return s, nil
}
