package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/casekeeper/internal/common"
	"github.com/dmitrijs2005/casekeeper/internal/server/models"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	_, err := r.GetByEmail(ctx, "a@b.org")
	require.ErrorIs(t, err, common.ErrNotFound)

	u, err := r.Create(ctx, &models.User{Email: "a@b.org", PasswordHash: []byte("h")})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = r.Create(ctx, &models.User{Email: "a@b.org"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	got, err := r.GetByEmail(ctx, "a@b.org")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, []byte("h"), got.PasswordHash)
}
