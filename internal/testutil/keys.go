// AngelaMos | 2026
// keys.go

package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agritrace/agritrace-api/internal/auth"
	"github.com/agritrace/agritrace-api/internal/config"
)

// JWTManager returns a manager backed by a fresh key pair in a temp dir.
func JWTManager(t *testing.T) *auth.JWTManager {
	t.Helper()

	dir := t.TempDir()
	cfg := config.JWTConfig{
		PrivateKeyPath:    filepath.Join(dir, "private.pem"),
		PublicKeyPath:     filepath.Join(dir, "public.pem"),
		AccessTokenExpire: time.Hour,
		Issuer:            "agritrace-test",
		Audience:          "agritrace-test",
	}

	require.NoError(t, auth.GenerateKeyPair(cfg.PrivateKeyPath, cfg.PublicKeyPath))

	m, err := auth.NewJWTManager(cfg)
	require.NoError(t, err)
	return m
}
