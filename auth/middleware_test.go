package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/wallet-go/config"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenDuration: time.Hour,
	}
}

// gate wraps a probe handler so tests can observe whether the request got
// through and what user id was attached.
func gate(cfg *config.AuthConfig) (http.Handler, *int64, *bool) {
	var gotUserID int64
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return Middleware(cfg)(next), &gotUserID, &called
}

func TestMiddleware_ValidToken(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	handler, gotUserID, called := gate(cfg)

	token, err := GenerateToken(42, []byte(cfg.JWTSecret), cfg.TokenDuration)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
	assert.Equal(t, int64(42), *gotUserID)
}

func TestMiddleware_Rejections(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()

	expired, err := GenerateToken(42, []byte(cfg.JWTSecret), -time.Minute)
	require.NoError(t, err)
	foreign, err := GenerateToken(42, []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"bearer without token", "Bearer"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong signing key", "Bearer " + foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler, _, called := gate(cfg)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			// The gate short-circuits: 401 and the downstream handler is
			// never invoked.
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, *called)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestUserIDFromContext_Absent(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)
}
