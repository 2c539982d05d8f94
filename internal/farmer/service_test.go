// AngelaMos | 2026
// service_test.go

package farmer_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/agritrace-api/internal/activity"
	"github.com/agritrace/agritrace-api/internal/collection"
	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/farmer"
	"github.com/agritrace/agritrace-api/internal/notify"
	"github.com/agritrace/agritrace-api/internal/testutil"
	"github.com/agritrace/agritrace-api/internal/user"
)

type fixture struct {
	store       *testutil.Store
	events      *testutil.Recorder
	activities  *activity.Service
	collections *collection.Service
	service     *farmer.Service
	officer     *user.User
	other       *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewStore()
	events := &testutil.Recorder{}
	dir := farmer.NewDirectory(store.Farmers())
	activities := activity.NewService(store.Activities(), dir, notify.Nop{})
	collections := collection.NewService(store.Collections(), dir, notify.Nop{})

	return &fixture{
		store:       store,
		events:      events,
		activities:  activities,
		collections: collections,
		service:     farmer.NewService(store.Farmers(), activities, collections, events),
		officer:     store.SeedUser(t, "Grace Officer", "grace@agritrace.io", user.RoleFieldOfficer, false),
		other:       store.SeedUser(t, "Peter Officer", "peter@agritrace.io", user.RoleFieldOfficer, false),
	}
}

func (fx *fixture) create(t *testing.T, name, contractID string) *farmer.Response {
	t.Helper()

	resp, err := fx.service.Create(context.Background(), fx.officer.ID, farmer.CreateFarmerRequest{
		Name:           name,
		Region:         "Eldoret",
		Contact:        "+254711000000",
		ContractedCrop: "Maize",
		ContractID:     contractID,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateFarmer(t *testing.T) {
	fx := newFixture(t)

	resp := fx.create(t, "Alice Johnson", "CT-100")
	assert.Equal(t, fx.officer.ID, resp.RegisteredBy.ID)

	events := fx.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notify.EventNewFarmer, events[0].Name)
	assert.Equal(t, "New farmer Alice Johnson registered in Eldoret", events[0].Message)

	_, err := fx.service.Create(context.Background(), fx.officer.ID, farmer.CreateFarmerRequest{
		Name:           "Someone Else",
		Region:         "Eldoret",
		Contact:        "+254722000000",
		ContractedCrop: "Beans",
		ContractID:     "CT-100",
	})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
	assert.Len(t, fx.events.Events(), 1)
}

func TestListNewestFirst(t *testing.T) {
	fx := newFixture(t)
	fx.create(t, "First", "CT-1")
	fx.create(t, "Second", "CT-2")

	list, err := fx.service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Name)
	assert.Equal(t, "Grace Officer", list[0].RegisteredBy.Name)
}

func TestUpdateOnlyByRegistrant(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	created := fx.create(t, "Alice Johnson", "CT-100")

	region := "Kisumu"
	_, err := fx.service.Update(ctx, fx.other.ID, created.ID, farmer.UpdateFarmerRequest{Region: &region})
	assert.ErrorIs(t, err, core.ErrForbidden)

	updated, err := fx.service.Update(ctx, fx.officer.ID, created.ID, farmer.UpdateFarmerRequest{Region: &region})
	require.NoError(t, err)
	assert.Equal(t, "Kisumu", updated.Region)
	assert.Equal(t, "Alice Johnson", updated.Name)

	_, err = fx.service.Update(ctx, fx.officer.ID, core.NewID(), farmer.UpdateFarmerRequest{Region: &region})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestProfileAndCascadeDelete(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	created := fx.create(t, "Alice Johnson", "CT-100")

	_, err := fx.activities.Create(ctx, fx.officer.ID, activity.CreateActivityRequest{
		FarmerID: created.ID,
		Type:     activity.TypePlanting,
		Cost:     json.RawMessage(`1500`),
	})
	require.NoError(t, err)

	for range 2 {
		_, err = fx.collections.Create(ctx, fx.officer.ID, collection.CreateCollectionRequest{
			FarmerID:    created.ID,
			Crop:        "Maize",
			Weight:      json.RawMessage(`250`),
			PaymentRate: json.RawMessage(`55`),
		})
		require.NoError(t, err)
	}

	profile, err := fx.service.Profile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", profile.Farmer.Name)
	assert.Len(t, profile.Activities, 1)
	assert.Len(t, profile.Collections, 2)

	deleted, err := fx.service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Farmer removed", deleted.Message)
	assert.EqualValues(t, 1, deleted.ActivitiesRemoved)
	assert.EqualValues(t, 2, deleted.CollectionsRemoved)

	_, err = fx.service.Profile(ctx, created.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = fx.service.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	n, err := fx.collections.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProfileEmptyListsAreNotNil(t *testing.T) {
	fx := newFixture(t)
	created := fx.create(t, "Alice Johnson", "CT-100")

	profile, err := fx.service.Profile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotNil(t, profile.Activities)
	assert.NotNil(t, profile.Collections)
}
