// AngelaMos | 2026
// repository_test.go

package insights

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/agritrace-api/internal/collection"
	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/testutil"
	"github.com/agritrace/agritrace-api/internal/user"
)

func seedCollection(
	t *testing.T,
	repo collection.Repository,
	farmerID, recordedBy, grade string,
	weight int64,
	at time.Time,
) {
	t.Helper()

	w := decimal.NewFromInt(weight)
	rate := decimal.NewFromInt(10)
	require.NoError(t, repo.Create(context.Background(), &collection.Collection{
		ID:             core.NewID(),
		FarmerID:       farmerID,
		RecordedBy:     recordedBy,
		Crop:           "Maize",
		CollectionDate: at,
		Weight:         w,
		QualityGrade:   grade,
		PaymentRate:    rate,
		TotalPayment:   collection.TotalPayment(w, rate),
		PaymentStatus:  collection.StatusPending,
	}))
}

func TestRepositoryCollectionsSinceBucketsInUTC(t *testing.T) {
	db := testutil.Postgres(t)
	ctx := context.Background()

	// One connection so the session time zone applies to every query.
	db.DB.SetMaxOpenConns(1)
	_, err := db.DB.ExecContext(ctx, `SET TIME ZONE 'Pacific/Kiritimati'`)
	require.NoError(t, err)

	officer := testutil.SeedAccountRow(t, db, "Grace Officer", "grace@agritrace.io", user.RoleFieldOfficer)
	f := testutil.SeedFarmerRow(t, db, "Alice Johnson", "Eldoret", "Maize", "CT-001", officer.ID)

	collections := collection.NewRepository(db.DB)
	seedCollection(t, collections, f.ID, officer.ID, "A", 100, time.Date(2026, 5, 11, 23, 0, 0, 0, time.UTC))
	seedCollection(t, collections, f.ID, officer.ID, "B", 40, time.Date(2026, 5, 11, 1, 0, 0, 0, time.UTC))
	seedCollection(t, collections, f.ID, officer.ID, "A", 7, time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC))

	repo := NewRepository(db.DB)

	rows, err := repo.CollectionsSince(ctx, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []Row{{Label: "2026-05-11", Value: 140}}, rows)

	grades, err := repo.QualityDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Row{{Label: "A", Value: 107}, {Label: "B", Value: 40}}, grades)

	regions, err := repo.YieldByRegion(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Row{{Label: "Eldoret", Value: 147}}, regions)
}

func TestRepositoryFarmerSnapshot(t *testing.T) {
	db := testutil.Postgres(t)
	ctx := context.Background()

	officer := testutil.SeedAccountRow(t, db, "Grace Officer", "grace@agritrace.io", user.RoleFieldOfficer)
	f := testutil.SeedFarmerRow(t, db, "Alice Johnson", "Eldoret", "Maize", "CT-001", officer.ID)

	collections := collection.NewRepository(db.DB)
	seedCollection(t, collections, f.ID, officer.ID, "A", 20, time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC))
	seedCollection(t, collections, f.ID, officer.ID, "B", 5, time.Date(2026, 5, 3, 8, 0, 0, 0, time.UTC))

	all, err := collections.ListByFarmer(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	_, err = collections.MarkPaid(ctx, all[0].ID, time.Now().UTC())
	require.NoError(t, err)

	repo := NewRepository(db.DB)

	snap, err := repo.FarmerSnapshot(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", snap.Name)
	assert.Equal(t, 2, snap.CollectionCount)
	assert.InDelta(t, 25.0, snap.TotalWeight, 0.0001)
	assert.InDelta(t, 50.0, snap.TotalPaid, 0.0001)
	assert.InDelta(t, 200.0, snap.TotalPending, 0.0001)
	assert.Equal(t, 0, snap.ActivityCount)
	assert.Empty(t, snap.LastActivity)

	_, err = repo.FarmerSnapshot(ctx, core.NewID())
	assert.ErrorIs(t, err, core.ErrNotFound)
}
