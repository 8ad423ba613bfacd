package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dtroode/basebackend-server/internal/model"
)

const (
	msgInternal           = "internal server error"
	msgUnauthenticated    = "authentication required"
	msgInvalidCredentials = "invalid username or password"
	msgNotFound           = "not found"
	msgConflict           = "already exists"
	msgBadRequest         = "invalid request body"
)

// handleError maps service errors to an HTTP status and a client-safe message.
func handleError(w http.ResponseWriter, err error) {
	status, message := errorStatus(err)
	writeError(w, status, message)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict, msgConflict
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized, msgUnauthenticated
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// validationMessage strips the sentinel prefix so the client sees only the field detail.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := model.ErrValidation.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
