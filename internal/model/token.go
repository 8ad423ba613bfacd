package model

import "github.com/google/uuid"

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	UserID uuid.UUID
	Access string
}

// TokenCodec issues and verifies signed session tokens.
type TokenCodec interface {
	Issue(userID uuid.UUID, access string) (string, error)
	Verify(token string) (TokenClaims, error)
}

// PasswordHasher turns plaintext passwords into digests and checks candidates against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}
