package repositories

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/identitysvc/domain"
)

// newTestDB opens a named in-memory database so each test gets its own
// store while gorm's connection pool still sees a single database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&DBUser{}, &DBOtpCode{}, &DBUserPreferences{}, &DBProduct{}, &DBPurchase{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func TestOtpRepositoryGetOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewOtpRepository(newTestDB(t))

	otp, err := repo.GetOrCreate(ctx, "a@b.com")
	require.NoError(t, err)
	assert.NotZero(t, otp.ID)
	assert.Equal(t, "a@b.com", otp.Email)
	assert.Empty(t, otp.Code)
	assert.Nil(t, otp.ExpiresAt)

	// Second call returns the same record, not a duplicate.
	again, err := repo.GetOrCreate(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, otp.ID, again.ID)
}

func TestOtpRepositorySingleRecordPerEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewOtpRepository(newTestDB(t))

	otp, err := repo.GetOrCreate(ctx, "a@b.com")
	require.NoError(t, err)

	expiry := time.Now().Add(10 * time.Minute)
	otp.Code = "123456"
	otp.Purpose = domain.PurposeEmail
	otp.ExpiresAt = &expiry
	require.NoError(t, repo.Save(ctx, otp))

	// A later flow mutates the same record in place.
	otp.Purpose = domain.PurposeChangePassword
	require.NoError(t, repo.Save(ctx, otp))

	found, err := repo.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, otp.ID, found.ID)
	assert.Equal(t, domain.PurposeChangePassword, found.Purpose)
	assert.Equal(t, "123456", found.Code)
}

func TestOtpRepositoryFindByEmailMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewOtpRepository(newTestDB(t))

	_, err := repo.FindByEmail(ctx, "nobody@b.com")
	assert.ErrorIs(t, err, domain.ErrOTPRecordNotFound)
}

func TestOtpRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewOtpRepository(newTestDB(t))

	otp, err := repo.GetOrCreate(ctx, "a@b.com")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, otp.ID))

	_, err = repo.FindByEmail(ctx, "a@b.com")
	assert.ErrorIs(t, err, domain.ErrOTPRecordNotFound)
}
