// AngelaMos | 2026
// policy_test.go

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/agritrace-api/internal/core"
)

func testPolicy() *Policy {
	return NewPolicy().
		Grant("Admin", CapFarmerCreate, CapFarmerDelete, CapCollectionList).
		Grant("FieldOfficer", CapFarmerCreate)
}

func TestPolicyDecide(t *testing.T) {
	p := testPolicy()

	tests := []struct {
		name   string
		role   string
		demo   bool
		cap    Capability
		status int
	}{
		{"admin allowed", "Admin", false, CapFarmerDelete, 0},
		{"officer allowed", "FieldOfficer", false, CapFarmerCreate, 0},
		{"officer denied delete", "FieldOfficer", false, CapFarmerDelete, http.StatusForbidden},
		{"demo denied mutation", "Admin", true, CapFarmerCreate, http.StatusForbidden},
		{"demo allowed read", "Admin", true, CapCollectionList, 0},
		{"anonymous", "", false, CapFarmerCreate, http.StatusUnauthorized},
		{"unknown role", "Guest", false, CapCollectionList, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := p.Decide(tt.role, tt.demo, tt.cap)
			if tt.status == 0 {
				assert.Nil(t, appErr)
				return
			}
			require.NotNil(t, appErr)
			assert.Equal(t, tt.status, appErr.StatusCode)
		})
	}
}

func TestPolicyDemoMessage(t *testing.T) {
	appErr := testPolicy().Decide("FieldOfficer", true, CapFarmerCreate)
	require.NotNil(t, appErr)
	assert.Equal(t, "Demo accounts are read-only", appErr.Message)
}

func TestPolicyRequire(t *testing.T) {
	p := testPolicy()
	called := false
	handler := p.Require(CapFarmerDelete)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("rejects before handler", func(t *testing.T) {
		called = false
		ctx := WithClaims(context.Background(), &AccessTokenClaims{UserID: "u1", Role: "FieldOfficer"})
		req := httptest.NewRequest(http.MethodDelete, "/farmers/1", nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		var body core.ErrorBody
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "User role FieldOfficer is not authorized to access this route", body.Message)
	})

	t.Run("passes through", func(t *testing.T) {
		called = false
		ctx := WithClaims(context.Background(), &AccessTokenClaims{UserID: "u1", Role: "Admin"})
		req := httptest.NewRequest(http.MethodDelete, "/farmers/1", nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
