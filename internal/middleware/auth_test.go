// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agritrace/agritrace-api/internal/core"
)

type stubVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (s stubVerifier) VerifyAccessToken(context.Context, string) (*AccessTokenClaims, error) {
	return s.claims, s.err
}

func TestAuthenticator(t *testing.T) {
	var seen *AccessTokenClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing token", func(t *testing.T) {
		seen = nil
		rec := httptest.NewRecorder()
		Authenticator(stubVerifier{})(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Not authorized, no token")
		assert.Nil(t, seen)
	})

	t.Run("expired token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")
		rec := httptest.NewRecorder()

		verifier := stubVerifier{err: fmt.Errorf("verify: %w", core.ErrTokenExpired)}
		Authenticator(verifier)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("valid token attaches caller", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer abc")
		rec := httptest.NewRecorder()

		claims := &AccessTokenClaims{UserID: "u1", Role: "Admin", IsDemo: true}
		Authenticator(stubVerifier{claims: claims})(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, claims, seen)
	})
}

func TestContextAccessors(t *testing.T) {
	ctx := WithClaims(context.Background(), &AccessTokenClaims{
		UserID: "u1",
		Role:   "FieldOfficer",
		IsDemo: true,
	})

	assert.Equal(t, "u1", GetUserID(ctx))
	assert.Equal(t, "FieldOfficer", GetUserRole(ctx))
	assert.True(t, IsDemo(ctx))
	assert.True(t, IsAuthenticated(ctx))
	assert.False(t, IsAuthenticated(context.Background()))
}

func TestExtractToken(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"Bearer":       "",
		"Basic abc":    "",
		"Bearer abc":   "abc",
		"BEARER  xyz ": "xyz",
	}
	for header, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		assert.Equal(t, want, ExtractToken(req), "header %q", header)
	}
}
