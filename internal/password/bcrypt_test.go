package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/basebackend-server/internal/model"
)

func TestBcrypt_HashVerify(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	secrets := []string{"secret1", "correct horse battery staple", "пароль123", strings.Repeat("x", 72)}
	for _, s := range secrets {
		digest, err := h.Hash(s)
		require.NoError(t, err)
		assert.NotEqual(t, s, digest)
		assert.True(t, strings.HasPrefix(digest, "$2a$"))
		assert.True(t, h.Verify(s, digest))
	}
}

func TestBcrypt_DifferentSecretsDoNotMatch(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	digest, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.False(t, h.Verify("secret2", digest))
	assert.False(t, h.Verify("", digest))
}

func TestBcrypt_SaltedDigests(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	d1, err := h.Hash("secret1")
	require.NoError(t, err)
	d2, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
}

func TestBcrypt_DigestCarriesCost(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost + 1)
	digest, err := h.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)

	// A hasher configured with another cost still verifies it.
	assert.True(t, NewBcrypt(DefaultCost).Verify("secret1", digest))
}

func TestBcrypt_Hash_Validation(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
	}{
		{name: "empty", password: ""},
		{name: "too short", password: "12345"},
		{name: "too long", password: strings.Repeat("x", 73)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Hash(tt.password)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
}

func TestBcrypt_Verify_MalformedDigest(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	assert.False(t, h.Verify("secret1", ""))
	assert.False(t, h.Verify("secret1", "not-a-digest"))
	assert.False(t, h.Verify("secret1", "$2a$04$short"))
}
