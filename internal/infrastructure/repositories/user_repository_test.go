package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/identitysvc/domain"
)

func TestUserRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := &domain.User{Email: "a@b.com", PasswordHash: "hash", IsActive: true}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)
	assert.False(t, user.DateJoined.IsZero())

	found, err := repo.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, found.IsActive)
	assert.False(t, found.Verified)
	assert.Zero(t, found.Tokens)

	exists, err := repo.ExistsByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "other@b.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepositoryFindMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.FindByEmail(ctx, "nobody@b.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.FindByNum(ctx, "+5511999999999")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.FindByID(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepositorySetVerifiedNum(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := &domain.User{Email: "a@b.com", IsActive: true}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.SetVerifiedNum(ctx, user.ID, "+5511999999999"))

	found, err := repo.FindByNum(ctx, "+5511999999999")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, found.Verified)
	assert.Equal(t, "+5511999999999", found.Num)
}

func TestUserRepositoryAddTokens(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := &domain.User{Email: "a@b.com", IsActive: true}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.AddTokens(ctx, user.ID, 10))
	require.NoError(t, repo.AddTokens(ctx, user.ID, 5))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, found.Tokens)
}

func TestUserRepositoryUpdatePassword(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := &domain.User{Email: "a@b.com", PasswordHash: "old", IsActive: true}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new"))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", found.PasswordHash)
}
