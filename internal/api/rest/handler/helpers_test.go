package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	restctx "github.com/dtroode/basebackend-server/internal/api/rest/context"
	"github.com/dtroode/basebackend-server/internal/model"
)

var testUser = model.User{
	ID:           uuid.MustParse("7d3e3b7e-8f2b-4f53-9c8e-1c1f7a0c2a11"),
	Username:     "alice",
	PasswordHash: "$2a$10$secret",
	Tokens:       []model.Token{{Access: model.AccessAuth, Token: "tok"}},
}

func authedContext(user model.User, token string) context.Context {
	return restctx.NewManager().SetUserToContext(context.Background(), user, token)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
