package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/basebackend-server/internal/logger"
	"github.com/dtroode/basebackend-server/internal/model"
)

// AuthService defines the session lifecycle operations used by the handlers.
type AuthService interface {
	Register(ctx context.Context, username, password string) (model.User, string, error)
	Login(ctx context.Context, username, password string) (model.User, string, error)
	Logout(ctx context.Context, user model.User, token string) error
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Auth handles user registration, login and logout endpoints.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates a user and returns it with a fresh token in the x-auth header.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	h.logger.Debug("Auth handler: processing registration request",
		"username", req.Username)

	user, token, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: registration failed",
			"username", req.Username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	w.Header().Set(AuthHeader, token)
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"username", req.Username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	w.Header().Set(AuthHeader, token)
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// Me returns the user resolved by the authentication middleware.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		WriteUnauthenticated(w)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// Logout revokes the token the request was authenticated with.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		WriteUnauthenticated(w)
		return
	}
	token, ok := h.contextManager.GetTokenFromContext(r.Context())
	if !ok {
		WriteUnauthenticated(w)
		return
	}

	if err := h.authService.Logout(r.Context(), user, token); err != nil {
		h.logger.Error("Auth handler: logout failed",
			"user_id", user.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
