package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/basebackend-server/internal/model"
)

func TestNewRepositories(t *testing.T) {
	db := &Connection{}

	assert.Equal(t, db, NewUserRepository(db).db)
	assert.Equal(t, db, NewItemRepository(db).db)
	assert.Equal(t, db, NewFileRepository(db).db)
}

func TestEncodeTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens []model.Token
		want   string
	}{
		{name: "nil", tokens: nil, want: `[]`},
		{name: "empty", tokens: []model.Token{}, want: `[]`},
		{
			name:   "ordered",
			tokens: []model.Token{{Access: "auth", Token: "a"}, {Access: "auth", Token: "b"}},
			want:   `[{"access":"auth","token":"a"},{"access":"auth","token":"b"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := encodeTokens(tt.tokens)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, got)
		})
	}
}

func TestDecodeTokens(t *testing.T) {
	t.Parallel()

	got, err := decodeTokens(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	got, err = decodeTokens([]byte(`[{"access":"auth","token":"x"}]`))
	require.NoError(t, err)
	assert.Equal(t, []model.Token{{Access: "auth", Token: "x"}}, got)

	_, err = decodeTokens([]byte(`{`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode tokens")
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	unique := &pgconn.PgError{Code: uniqueViolationCode}
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", unique)))
	assert.False(t, isUniqueViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("plain")))
	assert.False(t, isUniqueViolation(nil))
}

func TestConnection_NilPool(t *testing.T) {
	c := &Connection{}

	assert.NoError(t, c.Close())
	assert.Error(t, c.Ping(t.Context()))
}
