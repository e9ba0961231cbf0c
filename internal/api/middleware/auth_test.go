package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"peer-lending/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "testsecret"

func signToken(t *testing.T, claims jwt.Claims, method jwt.SigningMethod, key any) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func captureUser(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen, _ = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.AuthConfig{Enabled: true, JWTSecret: testSecret}

	valid := signToken(t, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, jwt.SigningMethodHS256, []byte(testSecret))

	tests := []struct {
		name     string
		cfg      config.AuthConfig
		header   string
		userHdr  string
		wantCode int
		wantUser string
	}{
		{"disabled passes through with header identity", config.AuthConfig{}, "", "bob", http.StatusOK, "bob"},
		{"disabled without identity", config.AuthConfig{}, "", "", http.StatusOK, ""},
		{"missing header", cfg, "", "", http.StatusUnauthorized, ""},
		{"wrong scheme", cfg, "Basic " + valid, "", http.StatusUnauthorized, ""},
		{"garbage token", cfg, "Bearer not-a-token", "", http.StatusUnauthorized, ""},
		{"valid token", cfg, "Bearer " + valid, "", http.StatusOK, "alice"},
		{"header identity ignored when enabled", cfg, "Bearer " + valid, "mallory", http.StatusOK, "alice"},
		{
			"expired token", cfg,
			"Bearer " + signToken(t, jwt.RegisteredClaims{Subject: "alice", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}, jwt.SigningMethodHS256, []byte(testSecret)),
			"", http.StatusUnauthorized, "",
		},
		{
			"token without expiry", cfg,
			"Bearer " + signToken(t, jwt.RegisteredClaims{Subject: "alice"}, jwt.SigningMethodHS256, []byte(testSecret)),
			"", http.StatusUnauthorized, "",
		},
		{
			"token without subject", cfg,
			"Bearer " + signToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}, jwt.SigningMethodHS256, []byte(testSecret)),
			"", http.StatusUnauthorized, "",
		},
		{
			"wrong secret", cfg,
			"Bearer " + signToken(t, jwt.RegisteredClaims{Subject: "alice", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}, jwt.SigningMethodHS256, []byte("other")),
			"", http.StatusUnauthorized, "",
		},
		{
			"unexpected signing method", cfg,
			"Bearer " + signToken(t, jwt.RegisteredClaims{Subject: "alice", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}, jwt.SigningMethodHS512, []byte(testSecret)),
			"", http.StatusUnauthorized, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			req := httptest.NewRequest(http.MethodGet, "/loans", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.userHdr != "" {
				req.Header.Set(UserIDHeader, tt.userHdr)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.cfg, logger)(captureUser(&seen)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantUser, seen)
		})
	}
}

func TestUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserID(req.Context())
	assert.False(t, ok)

	id, ok := UserID(WithUserID(req.Context(), "carol"))
	assert.True(t, ok)
	assert.Equal(t, "carol", id)

	_, ok = UserID(WithUserID(req.Context(), ""))
	assert.False(t, ok)
}
