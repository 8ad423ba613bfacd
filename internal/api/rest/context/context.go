package context

import (
	"context"

	"github.com/dtroode/basebackend-server/internal/model"
)

type ctxKey int

const (
	userKey ctxKey = iota
	tokenKey
)

// Manager stores the authenticated user and its session token in a request context.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetUserToContext returns a child context carrying user and the raw token it authenticated with.
func (m *Manager) SetUserToContext(ctx context.Context, user model.User, token string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, tokenKey, token)
}

func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}

func (m *Manager) GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
