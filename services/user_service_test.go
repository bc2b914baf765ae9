package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/resman-simple/apperrors"
	"github.com/resman-simple/config"
	"github.com/resman-simple/database"
	"github.com/resman-simple/dto"
	"github.com/resman-simple/models"
	"github.com/resman-simple/pagination"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func testConfig(scope config.EmailUniqueScope) config.Config {
	cfg := config.Config{EmailUniqueScope: scope}
	cfg.JWTSecret = "test-secret"
	return cfg
}

func TestCreateUserHashesPasswordAndDefaultsStatus(t *testing.T) {
	svc := NewUserService(setupTestDB(t), testConfig(config.EmailUniqueAll))

	user, err := svc.CreateUser(dto.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "s3cret99",
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, user.Status)
	assert.NotEmpty(t, user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret99")))
}

func TestCreateUserDuplicateEmailFailsWithConflict(t *testing.T) {
	svc := NewUserService(setupTestDB(t), testConfig(config.EmailUniqueAll))

	_, err := svc.CreateUser(dto.CreateUserRequest{Email: "alice@example.com", Password: "s3cret99"})
	require.NoError(t, err)

	_, err = svc.CreateUser(dto.CreateUserRequest{Email: "alice@example.com", Password: "other999"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSoftDeletedEmailBlocksReuseUnderAllScope(t *testing.T) {
	svc := NewUserService(setupTestDB(t), testConfig(config.EmailUniqueAll))

	user, err := svc.CreateUser(dto.CreateUserRequest{Email: "alice@example.com", Password: "s3cret99"})
	require.NoError(t, err)
	require.NoError(t, svc.SoftDeleteUser(user.ID))

	_, err = svc.CreateUser(dto.CreateUserRequest{Email: "alice@example.com", Password: "other999"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSoftDeletedEmailIsReusableUnderActiveScope(t *testing.T) {
	svc := NewUserService(setupTestDB(t), testConfig(config.EmailUniqueActive))

	user, err := svc.CreateUser(dto.CreateUserRequest{Email: "alice@example.com", Password: "s3cret99"})
	require.NoError(t, err)
	require.NoError(t, svc.SoftDeleteUser(user.ID))

	replacement, err := svc.CreateUser(dto.CreateUserRequest{Email: "alice@example.com", Password: "other999"})
	require.NoError(t, err)
	assert.NotEqual(t, user.ID, replacement.ID)
}

func TestSoftDeleteThenRestoreRoundTrip(t *testing.T) {
	svc := NewUserService(setupTestDB(t), testConfig(config.EmailUniqueAll))

	user, err := svc.CreateUser(dto.CreateUserRequest{Email: "alice@example.com", Password: "s3cret99"})
	require.NoError(t, err)

	require.NoError(t, svc.SoftDeleteUser(user.ID))
	_, err = svc.GetUser(user.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	restored, err := svc.RestoreUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, restored.ID)
	assert.Equal(t, user.Email, restored.Email)
}

func TestRestoreLiveUserFailsWithConflict(t *testing.T) {
	svc := NewUserService(setupTestDB(t), testConfig(config.EmailUniqueAll))

	user, err := svc.CreateUser(dto.CreateUserRequest{Email: "alice@example.com", Password: "s3cret99"})
	require.NoError(t, err)

	_, err = svc.RestoreUser(user.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUpdateUserStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewUserService(setupTestDB(t), testConfig(config.EmailUniqueAll))

	user, err := svc.CreateUser(dto.CreateUserRequest{Email: "alice@example.com", Password: "s3cret99"})
	require.NoError(t, err)

	_, err = svc.UpdateUserStatus(user.ID, models.UserStatus("FROZEN"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateUserChecksEmailUniqueness(t *testing.T) {
	svc := NewUserService(setupTestDB(t), testConfig(config.EmailUniqueAll))

	_, err := svc.CreateUser(dto.CreateUserRequest{Email: "alice@example.com", Password: "s3cret99"})
	require.NoError(t, err)
	bob, err := svc.CreateUser(dto.CreateUserRequest{Email: "bob@example.com", Password: "s3cret99"})
	require.NoError(t, err)

	taken := "alice@example.com"
	_, err = svc.UpdateUser(bob.ID, dto.UpdateUserRequest{Email: &taken})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Re-submitting the current email is not a conflict
	same := "bob@example.com"
	_, err = svc.UpdateUser(bob.ID, dto.UpdateUserRequest{Email: &same})
	assert.NoError(t, err)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(setupTestDB(t), testConfig(config.EmailUniqueAll))

	roleID := uuid.NewString()
	_, err := svc.CreateUser(dto.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "s3cret99",
		RoleID:   &roleID,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListUsersMeta(t *testing.T) {
	svc := NewUserService(setupTestDB(t), testConfig(config.EmailUniqueAll))
	for i := 0; i < 25; i++ {
		_, err := svc.CreateUser(dto.CreateUserRequest{
			Email:    fmt.Sprintf("user%02d@example.com", i),
			Password: "s3cret99",
		})
		require.NoError(t, err)
	}

	users, meta, err := svc.ListUsers(pagination.Params{Page: 3, Limit: 10}, "")

	require.NoError(t, err)
	assert.Len(t, users, 5)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.False(t, meta.HasNextPage)
	assert.True(t, meta.HasPreviousPage)
}

func TestListUsersRejectsUnknownStatusFilter(t *testing.T) {
	svc := NewUserService(setupTestDB(t), testConfig(config.EmailUniqueAll))

	_, _, err := svc.ListUsers(pagination.Params{}, "FROZEN")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
