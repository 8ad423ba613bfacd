package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dtroode/basebackend-server/internal/logger"
)

// Logging logs every HTTP request and its outcome.
type Logging struct {
	logger *logger.Logger
}

func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

func (l *Logging) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := routeTemplate(r)
		requestID := RequestIDFromContext(r.Context())

		l.logger.Debug("HTTP request started",
			"method", r.Method,
			"route", route,
			"request_id", requestID)

		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)

		duration := time.Since(start)

		if sw.status >= http.StatusInternalServerError {
			l.logger.Error("HTTP request failed",
				"method", r.Method,
				"route", route,
				"status", sw.status,
				"duration_ms", duration.Milliseconds(),
				"request_id", requestID)
			return
		}

		l.logger.Info("HTTP request completed",
			"method", r.Method,
			"route", route,
			"status", sw.status,
			"duration_ms", duration.Milliseconds(),
			"request_id", requestID)
	})
}

// routeTemplate keeps ids out of logs and metric labels.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
