package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dtroode/basebackend-server/internal/model"
)

// AuthHeader carries the session token in both directions.
const AuthHeader = "x-auth"

type errorResponse struct {
	Error string `json:"error"`
}

type userResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

type itemResponse struct {
	ID          string `json:"_id"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Price       string `json:"price"`
	CreatorID   string `json:"_creator"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type fileResponse struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	CreatedAt   string `json:"createdAt"`
}

func newUserResponse(u model.User) userResponse {
	return userResponse{ID: u.ID.String(), Username: u.Username}
}

func newItemResponse(i model.Item) itemResponse {
	return itemResponse{
		ID:          i.ID.String(),
		Headline:    i.Headline,
		Description: i.Description,
		Price:       i.Price,
		CreatorID:   i.CreatorID.String(),
		CreatedAt:   i.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   i.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func newFileResponse(f model.File) fileResponse {
	return fileResponse{
		ID:          f.ID.String(),
		Name:        f.Name,
		ContentType: f.ContentType,
		Size:        f.Size,
		CreatedAt:   f.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// WriteUnauthenticated writes the response shared by every rejected session.
func WriteUnauthenticated(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, msgUnauthenticated)
}

// WriteInternalError is used by middleware that has no error value to map.
func WriteInternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, msgInternal)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}
