package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccessAuth is the only token scope issued by the server.
const AccessAuth = "auth"

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	// GetByToken returns the user with the given id only if its token list
	// holds the exact token with the given access scope.
	GetByToken(ctx context.Context, id uuid.UUID, token, access string) (User, error)
	PushToken(ctx context.Context, id uuid.UUID, token Token) error
	// PullToken removes every entry carrying the token value. Removing an absent token is not an error.
	PullToken(ctx context.Context, id uuid.UUID, token string) error
}

// User represents a stored user with authentication material.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Tokens       []Token
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Token is a session token issued to a user together with its access scope.
type Token struct {
	Access string `json:"access"`
	Token  string `json:"token"`
}

// HasToken reports whether the user holds token with the given access scope.
func (u User) HasToken(token, access string) bool {
	for _, t := range u.Tokens {
		if t.Token == token && t.Access == access {
			return true
		}
	}
	return false
}
