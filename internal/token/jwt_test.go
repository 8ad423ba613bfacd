package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/basebackend-server/internal/model"
)

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret", 0)

	for _, access := range []string{model.AccessAuth, "reset"} {
		u := uuid.New()

		tok, err := j.Issue(u, access)
		require.NoError(t, err)

		got, err := j.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, model.TokenClaims{UserID: u, Access: access}, got)
	}
}

func TestJWT_TokensAreDistinct(t *testing.T) {
	j := NewJWT("secret", 0)
	u := uuid.New()

	t1, err := j.Issue(u, model.AccessAuth)
	require.NoError(t, err)
	t2, err := j.Issue(u, model.AccessAuth)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
}

func TestJWT_Tampered(t *testing.T) {
	j := NewJWT("secret", 0)

	tok, err := j.Issue(uuid.New(), model.AccessAuth)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	// Flip a character in the middle of each segment.
	offset := 0
	for _, part := range parts {
		i := offset + len(part)/2
		tampered := []byte(tok)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}

		_, err := j.Verify(string(tampered))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrVerification)

		offset += len(part) + 1
	}
}

func TestJWT_WrongKey(t *testing.T) {
	tok, err := NewJWT("secret", 0).Issue(uuid.New(), model.AccessAuth)
	require.NoError(t, err)

	_, err = NewJWT("other", 0).Verify(tok)
	assert.ErrorIs(t, err, ErrVerification)
}

func TestJWT_Malformed(t *testing.T) {
	j := NewJWT("secret", 0)

	for _, tok := range []string{"", "abc", "a.b.c", "Bearer x.y.z"} {
		_, err := j.Verify(tok)
		assert.ErrorIs(t, err, ErrVerification, tok)
	}
}

func TestJWT_ExpiryValidation(t *testing.T) {
	valid := NewJWT("secret", time.Hour)
	tok, err := valid.Issue(uuid.New(), model.AccessAuth)
	require.NoError(t, err)
	_, err = valid.Verify(tok)
	require.NoError(t, err)

	expired := &JWT{secretKey: "secret", ttl: -time.Minute}
	tok, err = expired.Issue(uuid.New(), model.AccessAuth)
	require.NoError(t, err)
	_, err = expired.Verify(tok)
	assert.ErrorIs(t, err, ErrVerification)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_RejectsUnsignedToken(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: uuid.New(),
		Access: model.AccessAuth,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWT("secret", 0).Verify(tok)
	assert.ErrorIs(t, err, ErrVerification)
}

func TestJWT_RejectsMissingClaims(t *testing.T) {
	sign := func(c Claims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("secret"))
		require.NoError(t, err)
		return tok
	}

	j := NewJWT("secret", 0)

	_, err := j.Verify(sign(Claims{Access: model.AccessAuth}))
	assert.ErrorIs(t, err, ErrVerification)

	_, err = j.Verify(sign(Claims{UserID: uuid.New()}))
	assert.ErrorIs(t, err, ErrVerification)
}
