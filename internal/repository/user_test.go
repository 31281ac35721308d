package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"babel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(suffix string, onboarded bool) *models.User {
	ts := time.Now().UnixNano()
	return &models.User{
		Email:       fmt.Sprintf("%s_%d@example.com", suffix, ts),
		Password:    "$2a$10$notarealhashbutlongenough",
		FullName:    "Test " + suffix,
		IsOnboarded: onboarded,
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	truncateTables(testDB)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	u := newTestUser("create", false)
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, got.Email)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999999)
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("GetByEmail", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, u.Email)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("GetByEmail missing returns nil without error", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		dup := newTestUser("dup", false)
		dup.Email = u.Email
		err := repo.Create(ctx, dup)
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "CONFLICT", appErr.Code)
	})
}

func TestUserRepository_UpdateOmitsPassword(t *testing.T) {
	truncateTables(testDB)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	u := newTestUser("update", false)
	require.NoError(t, repo.Create(ctx, u))
	originalHash := u.Password

	u.FullName = "Renamed"
	u.Bio = "Learning Portuguese"
	u.Password = "plaintext-should-never-land"
	u.IsOnboarded = true
	require.NoError(t, repo.Update(ctx, u))

	var stored models.User
	require.NoError(t, testDB.First(&stored, u.ID).Error)
	assert.Equal(t, "Renamed", stored.FullName)
	assert.True(t, stored.IsOnboarded)
	assert.Equal(t, originalHash, stored.Password, "profile updates must not touch the stored hash")
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	truncateTables(testDB)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	u := newTestUser("pw", false)
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "$2a$10$replacedhashreplacedhash"))

	var stored models.User
	require.NoError(t, testDB.First(&stored, u.ID).Error)
	assert.Equal(t, "$2a$10$replacedhashreplacedhash", stored.Password)

	err := repo.UpdatePassword(ctx, 424242, "$2a$10$whatever")
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepository_ListRecommended(t *testing.T) {
	truncateTables(testDB)
	userRepo := NewUserRepository(testDB)
	friendRepo := NewFriendRepository(testDB)
	ctx := context.Background()

	me := newTestUser("me", true)
	friend := newTestUser("friend", true)
	pendingPeer := newTestUser("pending", true)
	stranger := newTestUser("stranger", true)
	notOnboarded := newTestUser("raw", false)
	for _, u := range []*models.User{me, friend, pendingPeer, stranger, notOnboarded} {
		require.NoError(t, userRepo.Create(ctx, u))
	}

	// Established friendship with friend, pending request from pendingPeer.
	req := &models.FriendRequest{SenderID: me.ID, RecipientID: friend.ID, Status: models.FriendRequestStatusPending}
	require.NoError(t, friendRepo.CreateRequest(ctx, req))
	require.NoError(t, friendRepo.AcceptRequest(ctx, req.ID))
	require.NoError(t, friendRepo.CreateRequest(ctx, &models.FriendRequest{
		SenderID:    pendingPeer.ID,
		RecipientID: me.ID,
		Status:      models.FriendRequestStatusPending,
	}))

	ids := func(users []models.User) []uint {
		out := make([]uint, 0, len(users))
		for _, u := range users {
			out = append(out, u.ID)
		}
		return out
	}

	t.Run("default excludes self, friends and non-onboarded", func(t *testing.T) {
		got, err := userRepo.ListRecommended(ctx, me.ID, false)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint{pendingPeer.ID, stranger.ID}, ids(got))
	})

	t.Run("pending exclusion filters both directions", func(t *testing.T) {
		got, err := userRepo.ListRecommended(ctx, me.ID, true)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint{stranger.ID}, ids(got))
	})
}
