// AngelaMos | 2026
// handler_test.go

package farmer_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/agritrace-api/internal/farmer"
	"github.com/agritrace/agritrace-api/internal/middleware"
	"github.com/agritrace/agritrace-api/internal/testutil"
	"github.com/agritrace/agritrace-api/internal/user"
)

func newRouter(fx *fixture, u *user.User, demo bool) http.Handler {
	policy := middleware.NewPolicy().
		Grant(user.RoleAdmin, middleware.CapFarmerCreate, middleware.CapFarmerUpdate, middleware.CapFarmerDelete).
		Grant(user.RoleFieldOfficer, middleware.CapFarmerCreate, middleware.CapFarmerUpdate)

	r := chi.NewRouter()
	r.Use(testutil.As(u.ID, u.Role, demo))
	farmer.NewHandler(fx.service).RegisterRoutes(r, policy.Require)
	return r
}

func validFarmer(contractID string) map[string]string {
	return map[string]string{
		"name":           "  Alice Johnson ",
		"region":         "Eldoret",
		"contact":        "+254711000000",
		"contractedCrop": "Maize",
		"contractId":     contractID,
	}
}

func TestHandlerCreateAndGet(t *testing.T) {
	fx := newFixture(t)
	r := newRouter(fx, fx.officer, false)

	rec := testutil.Do(t, r, http.MethodPost, "/farmers", validFarmer("CT-9"), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := testutil.Decode[farmer.Response](t, rec)
	assert.Equal(t, "Alice Johnson", created.Name)

	rec = testutil.Do(t, r, http.MethodPost, "/farmers", validFarmer("CT-9"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Contract ID already registered", testutil.ErrorMessage(t, rec))

	rec = testutil.Do(t, r, http.MethodGet, "/farmers/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	profile := testutil.Decode[farmer.ProfileResponse](t, rec)
	assert.Equal(t, created.ID, profile.Farmer.ID)
	assert.Empty(t, profile.Activities)

	rec = testutil.Do(t, r, http.MethodGet, "/farmers/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Farmer not found", testutil.ErrorMessage(t, rec))
}

func TestHandlerCreateValidation(t *testing.T) {
	fx := newFixture(t)
	r := newRouter(fx, fx.officer, false)

	body := validFarmer("CT-1")
	delete(body, "region")

	rec := testutil.Do(t, r, http.MethodPost, "/farmers", body, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid farmer data", testutil.ErrorMessage(t, rec))
}

type failingCreate struct {
	farmer.Repository
}

func (failingCreate) Create(context.Context, *farmer.Farmer) error {
	return errors.New("insert farmer: connection reset")
}

func TestHandlerCreateStoreFailure(t *testing.T) {
	fx := newFixture(t)
	fx.service = farmer.NewService(failingCreate{fx.store.Farmers()}, fx.activities, fx.collections, fx.events)

	rec := testutil.Do(t, newRouter(fx, fx.officer, false), http.MethodPost, "/farmers", validFarmer("CT-1"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid farmer data", testutil.ErrorMessage(t, rec))
	assert.Contains(t, rec.Body.String(), "connection reset")
}

func TestHandlerUpdateOwnership(t *testing.T) {
	fx := newFixture(t)

	rec := testutil.Do(t, newRouter(fx, fx.officer, false), http.MethodPost, "/farmers", validFarmer("CT-1"), "")
	require.Equal(t, http.StatusCreated, rec.Code)
	created := testutil.Decode[farmer.Response](t, rec)

	rec = testutil.Do(t, newRouter(fx, fx.other, false), http.MethodPut, "/farmers/"+created.ID,
		map[string]string{"region": "Kisumu"}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized to update this farmer", testutil.ErrorMessage(t, rec))

	rec = testutil.Do(t, newRouter(fx, fx.officer, false), http.MethodPut, "/farmers/"+created.ID,
		map[string]string{"region": "Kisumu"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Kisumu", testutil.Decode[farmer.Response](t, rec).Region)
}

func TestHandlerDeletePermissions(t *testing.T) {
	fx := newFixture(t)
	admin := fx.store.SeedUser(t, "Admin", "admin@agritrace.io", user.RoleAdmin, false)

	rec := testutil.Do(t, newRouter(fx, fx.officer, false), http.MethodPost, "/farmers", validFarmer("CT-1"), "")
	require.Equal(t, http.StatusCreated, rec.Code)
	created := testutil.Decode[farmer.Response](t, rec)

	rec = testutil.Do(t, newRouter(fx, fx.officer, false), http.MethodDelete, "/farmers/"+created.ID, nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = testutil.Do(t, newRouter(fx, admin, true), http.MethodDelete, "/farmers/"+created.ID, nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Demo accounts are read-only", testutil.ErrorMessage(t, rec))

	rec = testutil.Do(t, newRouter(fx, admin, false), http.MethodDelete, "/farmers/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Farmer removed", testutil.Decode[farmer.DeleteResponse](t, rec).Message)
}
