package service

import (
	"context"
	"testing"

	"linguaspace/internal/models"
	"linguaspace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserService(t *testing.T) *UserService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return NewUserService(repository.NewUserRepository(db))
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success normalizes email and hashes password", func(t *testing.T) {
		svc := setupUserService(t)

		user, err := svc.Register(ctx, "  Alice@Example.COM ", "pw1")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEqual(t, "pw1", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")))
	})

	t.Run("Empty email rejected", func(t *testing.T) {
		svc := setupUserService(t)

		_, err := svc.Register(ctx, "   ", "pw1")
		require.Error(t, err)
		assert.Equal(t, models.CodeValidation, models.ErrorCode(err))

		users, err := svc.ListUsers(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("Empty password rejected", func(t *testing.T) {
		svc := setupUserService(t)

		_, err := svc.Register(ctx, "a@x.com", "")
		require.Error(t, err)
		assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
	})

	t.Run("Duplicate email rejected case-insensitively", func(t *testing.T) {
		svc := setupUserService(t)

		_, err := svc.Register(ctx, "a@x.com", "pw1")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "A@X.COM", "pw2")
		require.Error(t, err)
		assert.Equal(t, models.CodeDuplicateEmail, models.ErrorCode(err))

		users, err := svc.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := setupUserService(t)

	registered, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	t.Run("Correct credentials", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "a@x.com", "pw1")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("Email lookup is case-insensitive", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, " A@X.com ", "pw1")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "a@x.com", "nope")
		require.Error(t, err)
		assert.Equal(t, models.CodeInvalidCredentials, models.ErrorCode(err))
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@x.com", "pw1")
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
	})
}
