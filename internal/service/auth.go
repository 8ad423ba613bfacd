package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/basebackend-server/internal/logger"
	"github.com/dtroode/basebackend-server/internal/model"
)

// Auth implements the session lifecycle: registration, login, logout and
// resolution of session tokens to users.
type Auth struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	codec     model.TokenCodec
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	codec model.TokenCodec,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		codec:     codec,
		logger:    logger,
	}
}

// Register creates a user and issues its first session token.
func (a *Auth) Register(ctx context.Context, username, password string) (model.User, string, error) {
	username = strings.TrimSpace(username)
	a.logger.Debug("Auth service: starting user registration",
		"username", username)

	if username == "" {
		return model.User{}, "", fmt.Errorf("%w: username is required", model.ErrValidation)
	}

	_, err := a.userStore.GetByUsername(ctx, username)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"username", username)
		return model.User{}, "", fmt.Errorf("%w: username %s is already taken", model.ErrConflict, username)
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to get user by username: %w", err)
	}

	digest, err := a.hasher.Hash(password)
	if err != nil {
		if !errors.Is(err, model.ErrValidation) {
			a.logger.Error("Auth service: failed to hash password",
				"username", username,
				"error", err.Error())
		}
		return model.User{}, "", err
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.User{}, "", fmt.Errorf("%w: username %s is already taken", model.ErrConflict, username)
		}
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	user, token, err := a.issueAndAttach(ctx, user)
	if err != nil {
		return model.User{}, "", err
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"username", username,
		"user_id", user.ID)

	return user, token, nil
}

// Login checks credentials and issues a new session token.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, username, password string) (model.User, string, error) {
	username = strings.TrimSpace(username)
	a.logger.Debug("Auth service: starting user login",
		"username", username)

	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login rejected",
			"username", username)
		return model.User{}, "", model.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to get user by username: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Info("Auth service: login rejected",
			"username", username)
		return model.User{}, "", model.ErrInvalidCredentials
	}

	user, token, err := a.issueAndAttach(ctx, user)
	if err != nil {
		return model.User{}, "", err
	}

	a.logger.Info("Auth service: login completed successfully",
		"username", username,
		"user_id", user.ID)

	return user, token, nil
}

// Logout revokes token. Revoking a token the user no longer holds succeeds.
func (a *Auth) Logout(ctx context.Context, user model.User, token string) error {
	if err := a.userStore.PullToken(ctx, user.ID, token); err != nil {
		a.logger.Error("Auth service: failed to remove token",
			"user_id", user.ID,
			"error", err.Error())
		return fmt.Errorf("failed to remove token: %w", err)
	}

	a.logger.Info("Auth service: logout completed successfully",
		"user_id", user.ID)

	return nil
}

// Authenticate resolves a session token to the user holding it.
// Rejected tokens are reported as ErrUnauthenticated without further detail.
// Store failures are returned wrapped.
func (a *Auth) Authenticate(ctx context.Context, token string) (model.User, error) {
	claims, err := a.codec.Verify(token)
	if err != nil {
		a.logger.Debug("Auth service: token verification failed",
			"error", err.Error())
		return model.User{}, model.ErrUnauthenticated
	}

	if claims.Access != model.AccessAuth {
		a.logger.Debug("Auth service: token scope mismatch",
			"access", claims.Access)
		return model.User{}, model.ErrUnauthenticated
	}

	user, err := a.userStore.GetByToken(ctx, claims.UserID, token, model.AccessAuth)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Debug("Auth service: token is not held by user",
			"user_id", claims.UserID)
		return model.User{}, model.ErrUnauthenticated
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by token: %w", err)
	}

	return user, nil
}

// issueAndAttach is the only path that grows a user's token list.
func (a *Auth) issueAndAttach(ctx context.Context, user model.User) (model.User, string, error) {
	token, err := a.codec.Issue(user.ID, model.AccessAuth)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"user_id", user.ID,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	entry := model.Token{Access: model.AccessAuth, Token: token}
	if err := a.userStore.PushToken(ctx, user.ID, entry); err != nil {
		a.logger.Error("Auth service: failed to persist token",
			"user_id", user.ID,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to persist token: %w", err)
	}

	user.Tokens = append(user.Tokens, entry)

	return user, token, nil
}
