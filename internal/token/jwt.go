package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/basebackend-server/internal/model"
)

// ErrVerification is returned when a token is malformed, tampered with, signed
// with another key or expired.
var ErrVerification = errors.New("token verification failed")

// Claims represents JWT claims carrying the owner id and the access scope.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"_id"`
	Access string    `json:"access"`
}

var _ model.TokenCodec = (*JWT)(nil)

// JWT implements TokenCodec backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

// NewJWT creates a new JWT codec with the provided secret key.
// A zero ttl issues tokens without expiry; they stay valid until revoked.
func NewJWT(secretKey string, ttl time.Duration) *JWT {
	return &JWT{secretKey: secretKey, ttl: ttl}
}

// Issue creates a signed token for userID with the given access scope.
// Each token gets a unique id, so two tokens issued for the same user never collide.
func (j *JWT) Issue(userID uuid.UUID, access string) (string, error) {
	now := time.Now()
	registered := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if j.ttl != 0 {
		registered.ExpiresAt = jwt.NewNumericDate(now.Add(j.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: registered,
		UserID:           userID,
		Access:           access,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify validates the token signature and expiry and returns its claims.
func (j *JWT) Verify(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("%w: %w", ErrVerification, err)
	}
	if !token.Valid {
		return model.TokenClaims{}, fmt.Errorf("%w: token is invalid", ErrVerification)
	}
	if claims.UserID == uuid.Nil {
		return model.TokenClaims{}, fmt.Errorf("%w: missing subject", ErrVerification)
	}
	if claims.Access == "" {
		return model.TokenClaims{}, fmt.Errorf("%w: missing access scope", ErrVerification)
	}

	return model.TokenClaims{UserID: claims.UserID, Access: claims.Access}, nil
}
