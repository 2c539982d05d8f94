// AngelaMos | 2026
// repository_test.go

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
	"github.com/agritrace/agritrace-api/internal/testutil"
	"github.com/agritrace/agritrace-api/internal/user"
)

func TestRepositoryDuplicateContract(t *testing.T) {
	db := testutil.Postgres(t)

	officer := testutil.SeedAccountRow(t, db, "Grace Officer", "grace@agritrace.io", user.RoleFieldOfficer)
	testutil.SeedFarmerRow(t, db, "Alice Johnson", "Eldoret", "Maize", "CT-001", officer.ID)

	err := farmer.NewRepository(db.DB).Create(context.Background(), &farmer.Farmer{
		ID:             core.NewID(),
		Name:           "Bob Otieno",
		Region:         "Nakuru",
		Contact:        "+254722000000",
		ContractedCrop: "Beans",
		ContractID:     "CT-001",
		RegisteredBy:   officer.ID,
	})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestRepositoryDeleteCascade(t *testing.T) {
	db := testutil.Postgres(t)
	ctx := context.Background()

	officer := testutil.SeedAccountRow(t, db, "Grace Officer", "grace@agritrace.io", user.RoleFieldOfficer)
	alice := testutil.SeedFarmerRow(t, db, "Alice Johnson", "Eldoret", "Maize", "CT-001", officer.ID)
	bob := testutil.SeedFarmerRow(t, db, "Bob Otieno", "Nakuru", "Beans", "CT-002", officer.ID)

	farmers := farmer.NewRepository(db.DB)
	dir := farmer.NewDirectory(farmers)
	activities := activity.NewService(activity.NewRepository(db.DB), dir, nil)
	collections := collection.NewService(collection.NewRepository(db.DB), dir, nil)

	for _, id := range []string{alice.ID, alice.ID, bob.ID} {
		_, err := activities.Create(ctx, officer.ID, activity.CreateActivityRequest{
			FarmerID: id,
			Type:     activity.TypePlanting,
			Cost:     json.RawMessage(`100`),
		})
		require.NoError(t, err)

		_, err = collections.Create(ctx, officer.ID, collection.CreateCollectionRequest{
			FarmerID:    id,
			Crop:        "Maize",
			Weight:      json.RawMessage(`10`),
			PaymentRate: json.RawMessage(`5`),
		})
		require.NoError(t, err)
	}

	result, err := farmers.DeleteCascade(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.ActivitiesRemoved)
	assert.Equal(t, int64(2), result.CollectionsRemoved)

	_, err = farmers.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	left, err := activities.ListByFarmer(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	leftCollections, err := collections.ListByFarmer(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, leftCollections)

	bobCollections, err := collections.ListByFarmer(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobCollections, 1)

	_, err = farmers.DeleteCascade(ctx, alice.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	n, err := farmers.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
