package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/basebackend-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, username, password_hash, tokens, created_at, updated_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	tokens, err := encodeTokens(user.Tokens)
	if err != nil {
		return model.User{}, err
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}

	query := `INSERT INTO users (id, username, password_hash, tokens, created_at, updated_at)
			  VALUES ($1, $2, $3, $4::jsonb, $5, $6)
			  RETURNING ` + userColumns

	savedUser, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Username, user.PasswordHash, tokens, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrConflict
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByToken(ctx context.Context, id uuid.UUID, token, access string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
			  WHERE id = $1
			    AND tokens @> jsonb_build_array(jsonb_build_object('token', $2::text, 'access', $3::text))`

	user, err := scanUser(r.db.QueryRow(ctx, query, id, token, access))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by token: %w", err)
	}

	return user, nil
}

// PushToken appends token in a single statement so concurrent logins keep every token.
func (r *UserRepository) PushToken(ctx context.Context, id uuid.UUID, token model.Token) error {
	entry, err := encodeTokens([]model.Token{token})
	if err != nil {
		return err
	}

	query := `UPDATE users SET tokens = tokens || $2::jsonb, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, entry)
	if err != nil {
		return fmt.Errorf("failed to push token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) PullToken(ctx context.Context, id uuid.UUID, token string) error {
	query := `UPDATE users
			  SET tokens = COALESCE(
			          (SELECT jsonb_agg(t) FROM jsonb_array_elements(tokens) AS t WHERE t->>'token' <> $2),
			          '[]'::jsonb),
			      updated_at = now()
			  WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, token); err != nil {
		return fmt.Errorf("failed to pull token: %w", err)
	}

	return nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var (
		user   model.User
		tokens []byte
	)

	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &tokens, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}

	user.Tokens, err = decodeTokens(tokens)
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

func encodeTokens(tokens []model.Token) (string, error) {
	if tokens == nil {
		tokens = []model.Token{}
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return "", fmt.Errorf("failed to encode tokens: %w", err)
	}
	return string(data), nil
}

func decodeTokens(data []byte) ([]model.Token, error) {
	tokens := []model.Token{}
	if len(data) == 0 {
		return tokens, nil
	}
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("failed to decode tokens: %w", err)
	}
	return tokens, nil
}
