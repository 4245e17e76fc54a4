package auth

import (
	"context"
	"testing"

	"linguaspace/internal/models"
	"linguaspace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSessionManager(t *testing.T) (*SessionManager, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return NewSessionManager("test-secret", repository.NewUserRepository(db)), db
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, db := setupSessionManager(t)

	user := models.User{Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)

	token, err := m.Issue(user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, "a@x.com", resolved.Email)
}

func TestResolveRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	m, db := setupSessionManager(t)

	user := models.User{Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)

	token, err := m.Issue(user.ID)
	require.NoError(t, err)

	t.Run("Empty token", func(t *testing.T) {
		resolved, err := m.Resolve(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("Garbage token", func(t *testing.T) {
		resolved, err := m.Resolve(ctx, "not-a-token")
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("Tampered token", func(t *testing.T) {
		tampered := token[:len(token)-2] + "xx"
		resolved, err := m.Resolve(ctx, tampered)
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("Token signed with a different secret", func(t *testing.T) {
		other := NewSessionManager("other-secret", m.users)
		foreign, err := other.Issue(user.ID)
		require.NoError(t, err)

		resolved, err := m.Resolve(ctx, foreign)
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})
}

func TestResolveMissingUser(t *testing.T) {
	ctx := context.Background()
	m, db := setupSessionManager(t)

	user := models.User{Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)

	token, err := m.Issue(user.ID)
	require.NoError(t, err)

	// The account disappears while the client still holds a valid token.
	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	resolved, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestIssueRequiresSecret(t *testing.T) {
	m := NewSessionManager("", nil)
	_, err := m.Issue(1)
	assert.Error(t, err)
}
