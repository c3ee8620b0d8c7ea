package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arslanca/portfolio/internal/hash"
	"github.com/arslanca/portfolio/internal/repo"
)

func TestEnsureAdmin(t *testing.T) {
	t.Parallel()

	rp := repo.New(newTestDB(t))
	ctx := t.Context()

	require.NoError(t, EnsureAdmin(ctx, rp, "admin", "secret"))

	user, err := rp.FindUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
	assert.True(t, hash.CheckPassword(user.PasswordHash, "secret"))

	// A second run leaves the existing account untouched.
	require.NoError(t, EnsureAdmin(ctx, rp, "admin", "different"))
	again, err := rp.FindUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, again.PasswordHash)

	assert.Error(t, EnsureAdmin(ctx, rp, "", ""))
}
