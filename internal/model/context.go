package model

import "context"

// ContextManager binds an authenticated user and its raw token to a request context.
type ContextManager interface {
	SetUserToContext(ctx context.Context, user User, token string) context.Context
	GetUserFromContext(ctx context.Context) (User, bool)
	GetTokenFromContext(ctx context.Context) (string, bool)
}
