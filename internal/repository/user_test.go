package repository

import (
	"context"
	"errors"
	"testing"

	"linguaspace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// The unique index is the only duplicate-email guard; there is deliberately
// no application-level existence check that a concurrent registration could
// race past.
func TestUserCreate_DuplicateEmailCaughtByConstraint(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupRepoTestDB(t))

	first := &models.User{Email: "a@x.com", PasswordHash: "hash1"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.User{Email: "a@x.com", PasswordHash: "hash2"}
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.Equal(t, models.CodeDuplicateEmail, models.ErrorCode(err))

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
}

func TestUserGetByEmail_MissingReturnsNil(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupRepoTestDB(t))

	user, err := repo.GetByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserGetByID_Missing(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupRepoTestDB(t))

	_, err := repo.GetByID(ctx, 42)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}
