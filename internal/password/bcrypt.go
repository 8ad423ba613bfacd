// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/basebackend-server/internal/model"
)

// MinLength is the shortest accepted plaintext password.
const MinLength = 6

// maxLength is the bcrypt input limit in bytes.
const maxLength = 72

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt implements PasswordHasher. The digest is the standard
// $2a$<cost>$<salt+hash> string, so it carries its own salt and cost.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a hasher with the given work factor.
func NewBcrypt(cost int) *Bcrypt {
	return &Bcrypt{cost: cost}
}

// Hash validates password length and returns its bcrypt digest.
func (b *Bcrypt) Hash(password string) (string, error) {
	if len(password) < MinLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", model.ErrValidation, MinLength)
	}
	if len(password) > maxLength {
		return "", fmt.Errorf("%w: password must be at most %d bytes", model.ErrValidation, maxLength)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password must be at most %d bytes", model.ErrValidation, maxLength)
		}
		return "", fmt.Errorf("%w: %w", model.ErrHashing, err)
	}

	return string(digest), nil
}

// Verify reports whether password matches digest. Malformed digests never match.
func (b *Bcrypt) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
