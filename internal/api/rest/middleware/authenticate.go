package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/dtroode/basebackend-server/internal/api/rest/handler"
	"github.com/dtroode/basebackend-server/internal/logger"
	"github.com/dtroode/basebackend-server/internal/model"
)

// Authenticator resolves a session token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.User, error)
}

// Authenticate guards routes that need a session. It reads the token from
// the x-auth header and stores the resolved user and token in the request context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		authenticator:  authenticator,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(handler.AuthHeader)
		if token == "" {
			handler.WriteUnauthenticated(w)
			return
		}

		user, err := m.authenticator.Authenticate(r.Context(), token)
		if errors.Is(err, model.ErrUnauthenticated) {
			handler.WriteUnauthenticated(w)
			return
		}
		if err != nil {
			m.logger.Error("Authenticate middleware: failed to resolve token",
				"error", err.Error(),
				"request_id", RequestIDFromContext(r.Context()))
			handler.WriteInternalError(w)
			return
		}

		ctx := m.contextManager.SetUserToContext(r.Context(), user, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
