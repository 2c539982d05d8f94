// AngelaMos | 2026
// service_test.go

package collection_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/agritrace-api/internal/collection"
	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/farmer"
	"github.com/agritrace/agritrace-api/internal/notify"
	"github.com/agritrace/agritrace-api/internal/testutil"
	"github.com/agritrace/agritrace-api/internal/user"
)

type fixture struct {
	store    *testutil.Store
	events   *testutil.Recorder
	service  *collection.Service
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
		service:  collection.NewService(store.Collections(), farmer.NewDirectory(store.Farmers()), events),
		officer:  officer,
		farmerID: f.ID,
	}
}

func (fx *fixture) request(weight, rate string) collection.CreateCollectionRequest {
	return collection.CreateCollectionRequest{
		FarmerID:       fx.farmerID,
		Crop:           "Maize",
		CollectionDate: json.RawMessage(`"2026-04-02"`),
		Weight:         json.RawMessage(weight),
		PaymentRate:    json.RawMessage(rate),
		QualityGrade:   "A",
	}
}

func TestCreateComputesTotalPayment(t *testing.T) {
	tests := []struct {
		weight string
		rate   string
		total  float64
	}{
		{`250`, `55`, 13750},
		{`"200"`, `"60"`, 12000},
		{`12.5`, `"40.2"`, 502.5},
	}

	for _, tt := range tests {
		t.Run(tt.weight+"x"+tt.rate, func(t *testing.T) {
			fx := newFixture(t)

			resp, err := fx.service.Create(context.Background(), fx.officer.ID, fx.request(tt.weight, tt.rate))
			require.NoError(t, err)

			assert.InDelta(t, tt.total, resp.TotalPayment, 0.0001)
			assert.Equal(t, collection.StatusPending, resp.PaymentStatus)
			assert.Nil(t, resp.PaymentDate)
			assert.Equal(t, "Alice Johnson", resp.Farmer.Name)
		})
	}
}

func TestCreateRoundsToStoredScale(t *testing.T) {
	tests := []struct {
		weight string
		rate   string
		wantW  float64
		wantR  float64
		total  float64
	}{
		{`2.5`, `55.555`, 2.5, 55.56, 138.9},
		{`"1.23456"`, `10`, 1.235, 10, 12.35},
		{`0.0004`, `"7.001"`, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.weight+"x"+tt.rate, func(t *testing.T) {
			fx := newFixture(t)

			resp, err := fx.service.Create(context.Background(), fx.officer.ID, fx.request(tt.weight, tt.rate))
			if tt.total == 0 {
				assert.ErrorIs(t, err, collection.ErrInvalidWeight)
				return
			}
			require.NoError(t, err)

			assert.InDelta(t, tt.wantW, resp.Weight, 0.0000001)
			assert.InDelta(t, tt.wantR, resp.PaymentRate, 0.0000001)
			assert.InDelta(t, tt.total, resp.TotalPayment, 0.0000001)
			assert.InDelta(t, resp.Weight*resp.PaymentRate, resp.TotalPayment, 0.0000001)
		})
	}
}

func TestCreatePublishesEvent(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.Create(context.Background(), fx.officer.ID, fx.request(`250`, `55`))
	require.NoError(t, err)

	events := fx.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notify.EventNewCollection, events[0].Name)
	assert.Equal(t, "New Maize collection recorded for farmer Alice Johnson", events[0].Message)
}

func TestCreateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *collection.CreateCollectionRequest)
		wantErr error
	}{
		{"unknown farmer", func(req *collection.CreateCollectionRequest) {
			req.FarmerID = core.NewID()
			req.Weight = json.RawMessage(`"heavy"`)
		}, core.ErrNotFound},
		{"missing weight", func(req *collection.CreateCollectionRequest) {
			req.Weight = nil
		}, collection.ErrInvalidWeight},
		{"zero weight", func(req *collection.CreateCollectionRequest) {
			req.Weight = json.RawMessage(`0`)
		}, collection.ErrInvalidWeight},
		{"text weight", func(req *collection.CreateCollectionRequest) {
			req.Weight = json.RawMessage(`"heavy"`)
		}, collection.ErrInvalidWeight},
		{"negative rate", func(req *collection.CreateCollectionRequest) {
			req.PaymentRate = json.RawMessage(`-1`)
		}, collection.ErrInvalidPaymentRate},
		{"bad grade", func(req *collection.CreateCollectionRequest) {
			req.QualityGrade = "D"
		}, core.ErrInvalidInput},
		{"missing crop", func(req *collection.CreateCollectionRequest) {
			req.Crop = ""
		}, core.ErrInvalidInput},
		{"bad harvest date", func(req *collection.CreateCollectionRequest) {
			req.HarvestDate = json.RawMessage(`"yesterday"`)
		}, core.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			req := fx.request(`100`, `10`)
			tt.mutate(&req)

			_, err := fx.service.Create(context.Background(), fx.officer.ID, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMarkPaid(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	created, err := fx.service.Create(ctx, fx.officer.ID, fx.request(`250`, `55`))
	require.NoError(t, err)

	paid, err := fx.service.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, collection.StatusPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaymentDate)
	assert.InDelta(t, 13750.0, paid.TotalPayment, 0.0001)

	again, err := fx.service.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, collection.StatusPaid, again.PaymentStatus)
	require.NotNil(t, again.PaymentDate)
	assert.False(t, again.PaymentDate.Before(*paid.PaymentDate))
	assert.InDelta(t, 13750.0, again.TotalPayment, 0.0001)

	_, err = fx.service.MarkPaid(ctx, core.NewID())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListIncludesFarmer(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	other := fx.store.SeedFarmer(t, "Bob Otieno", "CT-002", fx.officer.ID)

	_, err := fx.service.Create(ctx, fx.officer.ID, fx.request(`10`, `5`))
	require.NoError(t, err)

	req := fx.request(`20`, `5`)
	req.FarmerID = other.ID
	req.CollectionDate = json.RawMessage(`"2026-04-05"`)
	_, err = fx.service.Create(ctx, fx.officer.ID, req)
	require.NoError(t, err)

	all, err := fx.service.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Bob Otieno", all[0].Farmer.Name)
	assert.Equal(t, "Nakuru", all[0].Farmer.Region)

	mine, err := fx.service.ListByFarmer(ctx, fx.farmerID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.InDelta(t, 50.0, mine[0].TotalPayment, 0.0001)
}
