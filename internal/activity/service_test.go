// AngelaMos | 2026
// service_test.go

package activity_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/agritrace-api/internal/activity"
	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/farmer"
	"github.com/agritrace/agritrace-api/internal/notify"
	"github.com/agritrace/agritrace-api/internal/testutil"
	"github.com/agritrace/agritrace-api/internal/user"
)

type fixture struct {
	store    *testutil.Store
	events   *testutil.Recorder
	service  *activity.Service
	officer  *user.User
	farmerID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewStore()
	events := &testutil.Recorder{}
	officer := store.SeedUser(t, "Grace Officer", "grace@agritrace.io", user.RoleFieldOfficer, false)
	f := store.SeedFarmer(t, "Alice Johnson", "CT-001", officer.ID)

	return &fixture{
		store:    store,
		events:   events,
		service:  activity.NewService(store.Activities(), farmer.NewDirectory(store.Farmers()), events),
		officer:  officer,
		farmerID: f.ID,
	}
}

func TestCreateActivity(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.service.Create(context.Background(), fx.officer.ID, activity.CreateActivityRequest{
		FarmerID:    fx.farmerID,
		Type:        activity.TypePlanting,
		Date:        json.RawMessage(`"2026-03-10"`),
		Cost:        json.RawMessage(`1500`),
		SeedVariety:    " H614 ",
		GeneralDetails: "Rows 1-4\n  spacing 75cm ",
	})
	require.NoError(t, err)

	assert.Equal(t, fx.farmerID, resp.Farmer)
	assert.Equal(t, fx.officer.ID, resp.RecordedBy.ID)
	assert.InDelta(t, 1500.0, resp.Cost, 0.0001)
	assert.Equal(t, " H614 ", resp.SeedVariety)
	assert.Equal(t, "Rows 1-4\n  spacing 75cm ", resp.GeneralDetails)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), resp.Date)

	events := fx.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notify.EventNewActivity, events[0].Name)
	assert.Equal(t, "New Planting activity logged for farmer Alice Johnson", events[0].Message)
}

func TestCreateActivityCostAsString(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.service.Create(context.Background(), fx.officer.ID, activity.CreateActivityRequest{
		FarmerID: fx.farmerID,
		Type:     activity.TypeIrrigation,
		Cost:     json.RawMessage(`"250.50"`),
	})
	require.NoError(t, err)
	assert.InDelta(t, 250.5, resp.Cost, 0.0001)
	assert.False(t, resp.Date.IsZero())
}

func TestCreateActivityRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *activity.CreateActivityRequest)
		wantErr error
	}{
		{"unknown farmer", func(req *activity.CreateActivityRequest) {
			req.FarmerID = core.NewID()
		}, core.ErrNotFound},
		{"non numeric cost", func(req *activity.CreateActivityRequest) {
			req.Cost = json.RawMessage(`"lots"`)
		}, activity.ErrInvalidCost},
		{"negative cost", func(req *activity.CreateActivityRequest) {
			req.Cost = json.RawMessage(`-10`)
		}, activity.ErrInvalidCost},
		{"unknown type", func(req *activity.CreateActivityRequest) {
			req.Type = "Dancing"
		}, core.ErrInvalidInput},
		{"bad date", func(req *activity.CreateActivityRequest) {
			req.Date = json.RawMessage(`"10/03/2026"`)
		}, core.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			req := activity.CreateActivityRequest{
				FarmerID: fx.farmerID,
				Type:     activity.TypeWeeding,
				Cost:     json.RawMessage(`100`),
			}
			tt.mutate(&req)

			_, err := fx.service.Create(context.Background(), fx.officer.ID, req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, fx.events.Events())
		})
	}
}

func TestFarmerLookupRunsBeforeCostCheck(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.Create(context.Background(), fx.officer.ID, activity.CreateActivityRequest{
		FarmerID: core.NewID(),
		Type:     activity.TypeWeeding,
		Cost:     json.RawMessage(`"bogus"`),
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListByFarmerNewestFirst(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	for _, date := range []string{`"2026-01-05"`, `"2026-02-20"`, `"2026-01-30"`} {
		_, err := fx.service.Create(ctx, fx.officer.ID, activity.CreateActivityRequest{
			FarmerID: fx.farmerID,
			Type:     activity.TypeFertilizing,
			Date:     json.RawMessage(date),
		})
		require.NoError(t, err)
	}

	list, err := fx.service.ListByFarmer(ctx, fx.farmerID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, time.February, list[0].Date.Month())
	assert.Equal(t, 30, list[1].Date.Day())
	assert.Equal(t, 5, list[2].Date.Day())
	assert.Equal(t, "Grace Officer", list[0].RecordedBy.Name)

	_, err = fx.service.ListByFarmer(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
