package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/dtroode/basebackend-server/internal/api/rest/handler"
	"github.com/dtroode/basebackend-server/internal/logger"
)

// Recovery turns a panicking handler into a 500 response.
type Recovery struct {
	logger *logger.Logger
}

func NewRecovery(logger *logger.Logger) *Recovery {
	return &Recovery{logger: logger}
}

func (m *Recovery) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				m.logger.Error("HTTP handler panicked",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
					"request_id", RequestIDFromContext(r.Context()))
				handler.WriteInternalError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
