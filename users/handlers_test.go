package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/wallet-go/auth"
	"github.com/user/wallet-go/config"
)

// newTestRouter wires the user routes the same way main does.
func newTestRouter(store Store) http.Handler {
	authCfg := &config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenDuration: time.Hour,
	}

	handlers := NewHandlers(NewService(store, *authCfg))

	r := chi.NewRouter()
	r.Route("/api/v1/user", func(r chi.Router) {
		r.Post("/signup", handlers.HandleSignup())
		r.Post("/signin", handlers.HandleSignin())
		r.Get("/bulk", handlers.HandleSearch())
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(authCfg))
			r.Put("/", handlers.HandleUpdate())
		})
	})
	return r
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// TestUserFlow walks the whole identity lifecycle over the HTTP surface:
// register, duplicate register, bad signin, good signin, gated update, search.
func TestUserFlow(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	router := newTestRouter(store)

	signupBody := map[string]string{
		"username":  "a@b.com",
		"password":  "secret1",
		"firstName": "A",
		"lastName":  "B",
	}

	// Register succeeds and returns a token.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/user/signup", "", signupBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[TokenResponse](t, rec)
	assert.Equal(t, "User created successfully", created.Message)
	require.NotEmpty(t, created.Token)

	// Registering the same username again conflicts.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/user/signup", "", signupBody)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Signin with the wrong password fails with 401.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/user/signin", "", map[string]string{
		"username": "a@b.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decode[map[string]string](t, rec)["message"])

	// Signin with the correct password returns a fresh token.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/user/signin", "", map[string]string{
		"username": "a@b.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[TokenResponse](t, rec).Token
	require.NotEmpty(t, token)

	// Authenticated update of a single field.
	rec = doJSON(t, router, http.MethodPut, "/api/v1/user/", token, map[string]string{
		"firstName": "C",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Updated successfully", decode[MessageResponse](t, rec).Message)

	// The update is visible through search, and no password leaks.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/user/bulk?filter=C", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	results := decode[SearchResponse](t, rec)
	require.Len(t, results.User, 1)
	assert.Equal(t, "a@b.com", results.User[0].Username)
	assert.Equal(t, "C", results.User[0].FirstName)
	assert.Equal(t, "B", results.User[0].LastName)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestSignup_InvalidPayloads(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	router := newTestRouter(store)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"username not an email", map[string]string{
			"username": "not-an-email", "password": "secret1", "firstName": "A", "lastName": "B",
		}},
		{"password too short", map[string]string{
			"username": "a@b.com", "password": "short", "firstName": "A", "lastName": "B",
		}},
		{"missing names", map[string]string{
			"username": "a@b.com", "password": "secret1",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := store.Calls()
			rec := doJSON(t, router, http.MethodPost, "/api/v1/user/signup", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			// Validation failed before any store access.
			assert.Equal(t, before, store.Calls())
		})
	}

	// Malformed JSON is rejected as a bad request.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/signup", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdate_Unauthorized(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	router := newTestRouter(store)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/user/signup", "", map[string]string{
		"username": "a@b.com", "password": "secret1", "firstName": "A", "lastName": "B",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[TokenResponse](t, rec).Token

	update := map[string]string{"firstName": "C"}

	t.Run("no token", func(t *testing.T) {
		before := store.Calls()
		rec := doJSON(t, router, http.MethodPut, "/api/v1/user/", "", update)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		// Rejected before any store access.
		assert.Equal(t, before, store.Calls())
	})

	t.Run("tampered token", func(t *testing.T) {
		before := store.Calls()
		rec := doJSON(t, router, http.MethodPut, "/api/v1/user/", token+"x", update)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, before, store.Calls())
	})

	t.Run("validation failure stops before the write", func(t *testing.T) {
		before := store.get(1).HashedPassword
		calls := store.Calls()
		rec := doJSON(t, router, http.MethodPut, "/api/v1/user/", token, map[string]string{
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, calls, store.Calls())
		assert.Equal(t, before, store.get(1).HashedPassword)
	})
}

func TestSearch_Filters(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	router := newTestRouter(store)

	for i, names := range [][2]string{{"kirat", "singh"}, {"harkirat", "singh"}, {"Jane", "Doe"}} {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/user/signup", "", map[string]string{
			"username":  fmt.Sprintf("user%d@b.com", i),
			"password":  "secret1",
			"firstName": names[0],
			"lastName":  names[1],
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/user/bulk", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[SearchResponse](t, rec).User, 3)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/user/bulk?filter=kir", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[SearchResponse](t, rec).User, 2)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/user/bulk?filter=sing", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[SearchResponse](t, rec).User, 2)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/user/bulk?filter=zzz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[SearchResponse](t, rec).User)
}
