// AngelaMos | 2026
// postgres.go

package testutil

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/agritrace/agritrace-api/internal/config"
	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/farmer"
	"github.com/agritrace/agritrace-api/internal/user"
)

// Postgres returns a migrated, empty database owned by the calling test.
// DATABASE_TEST_URL points at an existing server; without it a disposable
// container is started. The test is skipped in -short mode or when neither
// is reachable.
func Postgres(t *testing.T) *core.Database {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres tests skipped in short mode")
	}

	ctx := context.Background()

	serverURL := os.Getenv("DATABASE_TEST_URL")
	if serverURL == "" {
		serverURL = startPostgres(ctx, t)
	}

	dbURL := createDatabase(ctx, t, serverURL)

	db, err := core.NewDatabase(ctx, config.DatabaseConfig{
		URL:             dbURL,
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close() //nolint:errcheck // test teardown
	})

	require.NoError(t, db.Migrate(ctx))
	return db
}

func startPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()

	testcontainers.SkipIfProviderIsNotHealthy(t)

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("agritrace"),
		tcPostgres.WithUsername("agritrace"),
		tcPostgres.WithPassword("agritrace"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgC.Terminate(context.Background()) //nolint:errcheck // test teardown
	})

	connStr, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

// createDatabase gives each test its own database so packages running in
// parallel against one server never see each other's rows.
func createDatabase(ctx context.Context, t *testing.T, serverURL string) string {
	t.Helper()

	admin, err := core.NewDatabase(ctx, config.DatabaseConfig{
		URL:          serverURL,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}

	name := "agritrace_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = admin.DB.ExecContext(ctx, "CREATE DATABASE "+name)
	require.NoError(t, err)

	t.Cleanup(func() {
		defer admin.Close() //nolint:errcheck // test teardown
		//nolint:errcheck // test teardown
		_, _ = admin.DB.ExecContext(context.Background(),
			fmt.Sprintf("DROP DATABASE IF EXISTS %s WITH (FORCE)", name))
	})

	u, err := url.Parse(serverURL)
	require.NoError(t, err)
	u.Path = "/" + name
	return u.String()
}

// SeedAccountRow inserts an account straight through the SQL repository.
func SeedAccountRow(t *testing.T, db *core.Database, name, email, role string) *user.User {
	t.Helper()

	u := &user.User{
		ID:           core.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: "unused",
		Role:         role,
	}
	require.NoError(t, user.NewRepository(db.DB).Create(context.Background(), u))
	return u
}

// SeedFarmerRow inserts a farmer straight through the SQL repository.
func SeedFarmerRow(
	t *testing.T,
	db *core.Database,
	name, region, crop, contractID, registeredBy string,
) *farmer.Farmer {
	t.Helper()

	f := &farmer.Farmer{
		ID:             core.NewID(),
		Name:           name,
		Region:         region,
		Contact:        "+254700000000",
		ContractedCrop: crop,
		ContractID:     contractID,
		RegisteredBy:   registeredBy,
	}
	require.NoError(t, farmer.NewRepository(db.DB).Create(context.Background(), f))
	return f
}
