package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	restctx "github.com/dtroode/basebackend-server/internal/api/rest/context"
	"github.com/dtroode/basebackend-server/internal/mocks"
	"github.com/dtroode/basebackend-server/internal/model"
	"github.com/dtroode/basebackend-server/internal/password"
	"github.com/dtroode/basebackend-server/internal/service"
	"github.com/dtroode/basebackend-server/internal/testutil"
	"github.com/dtroode/basebackend-server/internal/token"
)

type healthy struct{}

func (healthy) Report() (bool, map[string]string) {
	return true, map[string]string{"database": "ok"}
}

type fixture struct {
	handler http.Handler
	store   *testutil.MemUserStore
	items   *mocks.ItemService
	files   *mocks.FileService
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	store := testutil.NewMemUserStore()
	log := testutil.MakeNoopLogger()
	auth := service.NewAuth(store, password.NewBcrypt(bcrypt.MinCost), token.NewJWT("router-secret", 0), log)
	items := mocks.NewItemService(t)
	files := mocks.NewFileService(t)

	r := New(auth, items, files, healthy{}, restctx.NewManager(), prometheus.NewRegistry(), 1<<20, log)

	return fixture{handler: r.Register(), store: store, items: items, files: files}
}

func (f fixture) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("x-auth", token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_SessionLifecycle(t *testing.T) {
	f := newFixture(t)

	reg := f.do(t, http.MethodPost, "/users", `{"username":" alice ","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, reg.Code)
	regToken := reg.Header().Get("x-auth")
	require.NotEmpty(t, regToken)
	assert.NotEmpty(t, reg.Header().Get("X-Request-ID"))

	var created map[string]any
	require.NoError(t, json.Unmarshal(reg.Body.Bytes(), &created))
	assert.Equal(t, "alice", created["username"])
	assert.Len(t, created, 2)

	dup := f.do(t, http.MethodPost, "/users", `{"username":"alice","password":"another1"}`, "")
	assert.Equal(t, http.StatusConflict, dup.Code)
	assert.Equal(t, 1, f.store.Len())

	login := f.do(t, http.MethodPost, "/users/login", `{"username":"alice","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, login.Code)
	loginToken := login.Header().Get("x-auth")
	assert.NotEqual(t, regToken, loginToken)

	for _, tok := range []string{regToken, loginToken} {
		me := f.do(t, http.MethodGet, "/users/me", "", tok)
		require.Equal(t, http.StatusOK, me.Code)
		assert.Contains(t, me.Body.String(), `"username":"alice"`)
	}

	out := f.do(t, http.MethodDelete, "/users/me/token", "", loginToken)
	assert.Equal(t, http.StatusOK, out.Code)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/users/me", "", loginToken).Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/users/me", "", regToken).Code)
}

func TestRouter_LoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/users", `{"username":"bob","password":"secret1"}`, "").Code)

	wrong := f.do(t, http.MethodPost, "/users/login", `{"username":"bob","password":"nope123"}`, "")
	unknown := f.do(t, http.MethodPost, "/users/login", `{"username":"nobody","password":"secret1"}`, "")

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestRouter_ValidationErrors(t *testing.T) {
	f := newFixture(t)

	short := f.do(t, http.MethodPost, "/users", `{"username":"carol","password":"12345"}`, "")
	assert.Equal(t, http.StatusBadRequest, short.Code)

	blank := f.do(t, http.MethodPost, "/users", `{"username":"   ","password":"secret1"}`, "")
	assert.Equal(t, http.StatusBadRequest, blank.Code)

	assert.Equal(t, 0, f.store.Len())
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	f := newFixture(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/users/me"},
		{http.MethodDelete, "/users/me/token"},
		{http.MethodPost, "/items"},
		{http.MethodGet, "/items"},
		{http.MethodGet, "/items/7d3e3b7e-8f2b-4f53-9c8e-1c1f7a0c2a11"},
		{http.MethodPatch, "/items/7d3e3b7e-8f2b-4f53-9c8e-1c1f7a0c2a11"},
		{http.MethodPost, "/files"},
		{http.MethodGet, "/files"},
		{http.MethodGet, "/files/7d3e3b7e-8f2b-4f53-9c8e-1c1f7a0c2a11"},
	}

	var first string
	for _, rt := range routes {
		rec := f.do(t, rt.method, rt.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, rt.path)
		if first == "" {
			first = rec.Body.String()
		}
		assert.Equal(t, first, rec.Body.String(), rt.path)

		rec = f.do(t, rt.method, rt.path, "", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, rt.path)
		assert.Equal(t, first, rec.Body.String(), rt.path)
	}
}

func TestRouter_Items(t *testing.T) {
	f := newFixture(t)

	reg := f.do(t, http.MethodPost, "/users", `{"username":"dave","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, reg.Code)
	tok := reg.Header().Get("x-auth")

	f.items.On("List", mock.Anything, mock.Anything).Return([]model.Item{}, nil)

	rec := f.do(t, http.MethodGet, "/items", "", tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestRouter_OpsEndpoints(t *testing.T) {
	f := newFixture(t)

	health := f.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, health.Code)

	f.do(t, http.MethodPost, "/users/login", `{"username":"x","password":"secret1"}`, "")

	metrics := f.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "http_requests_total")
	assert.Contains(t, metrics.Body.String(), `route="/users/login"`)
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/nope", "", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, f.do(t, http.MethodGet, "/users/login", "", "").Code)
}
