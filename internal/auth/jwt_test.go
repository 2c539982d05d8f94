// AngelaMos | 2026
// jwt_test.go

package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/agritrace-api/internal/auth"
	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/testutil"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testutil.JWTManager(t)

	token, expiresAt, err := m.CreateAccessToken(auth.AccessTokenClaims{
		UserID:       "user-1",
		Role:         auth.RoleAdmin,
		IsDemo:       true,
		TokenVersion: 2,
	})
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := m.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
	assert.True(t, claims.IsDemo)
	assert.Equal(t, 2, claims.TokenVersion)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	signer := testutil.JWTManager(t)
	verifier := testutil.JWTManager(t)

	token, _, err := signer.CreateAccessToken(auth.AccessTokenClaims{
		UserID: "user-1",
		Role:   auth.RoleFieldOfficer,
	})
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	m := testutil.JWTManager(t)

	token, _, err := m.CreateAccessToken(auth.AccessTokenClaims{
		UserID: "user-1",
		Role:   "Farmer",
	})
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWKSHandler(t *testing.T) {
	m := testutil.JWTManager(t)

	rec := httptest.NewRecorder()
	m.GetJWKSHandler()(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Keys, 1)
	assert.Equal(t, m.GetKeyID(), body.Keys[0]["kid"])
	assert.Equal(t, "EC", body.Keys[0]["kty"])
}
