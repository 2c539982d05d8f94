// AngelaMos | 2026
// security_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("harvest-2026")
	require.NoError(t, err)
	assert.NotEqual(t, "harvest-2026", hash)

	ok, err := VerifyPassword("harvest-2026", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordTimingSafeWithoutHash(t *testing.T) {
	ok, _, err := VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFingerprintIsStable(t *testing.T) {
	assert.Equal(t, Fingerprint("prompt"), Fingerprint("prompt"))
	assert.NotEqual(t, Fingerprint("prompt"), Fingerprint("prompt "))
	assert.Len(t, Fingerprint("x"), 64)
}
