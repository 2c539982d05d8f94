// AngelaMos | 2026
// fixtures.go

package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/farmer"
	"github.com/agritrace/agritrace-api/internal/user"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password1"

// SeedUser inserts an account directly into the store.
func (s *Store) SeedUser(t *testing.T, name, email, role string, demo bool) *user.User {
	t.Helper()

	hash, err := core.HashPassword(SeedPassword)
	require.NoError(t, err)

	u := &user.User{
		ID:           core.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsDemo:       demo,
	}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

// SeedFarmer inserts a farmer registered by registeredBy.
func (s *Store) SeedFarmer(t *testing.T, name, contractID, registeredBy string) *farmer.Farmer {
	t.Helper()

	f := &farmer.Farmer{
		ID:             core.NewID(),
		Name:           name,
		Region:         "Nakuru",
		Contact:        "+254700000000",
		ContractedCrop: "Maize",
		ContractID:     contractID,
		RegisteredBy:   registeredBy,
	}
	require.NoError(t, s.Farmers().Create(context.Background(), f))
	return f
}
