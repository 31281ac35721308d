// Package repository contains the data access layer built on GORM.
package repository

import (
	"context"
	"errors"
	"strings"

	"babel/internal/cache"
	"babel/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UserRepository defines data access operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID uint, hash string) error
	ListRecommended(ctx context.Context, userID uint, excludePending bool) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// isUniqueConstraintError reports whether err is a unique index violation.
// Covers the postgres driver error code and the sqlite message shape used in
// tests.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint")
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Email already exists, please use a different one")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID reads through the user cache. Cache errors degrade to a DB read.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		return r.db.WithContext(ctx).First(&user, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByEmail returns (nil, nil) when no account exists for the email so the
// caller can answer missing accounts and wrong passwords identically.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// Update persists profile fields. The password column is omitted so a profile
// save can never overwrite a hash; password changes go through UpdatePassword.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).
		Model(user).
		Omit("password").
		Updates(user).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Email already exists, please use a different one")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("password", hash)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", userID)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

// ListRecommended returns onboarded users who are neither the requester nor
// already friends with them. With excludePending set, users with a pending
// request in either direction are filtered out as well.
func (r *userRepository) ListRecommended(ctx context.Context, userID uint, excludePending bool) ([]models.User, error) {
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("users.id <> ?", userID).
		Where("users.is_onboarded = ?", true).
		Where("users.id NOT IN (?)",
			r.db.Model(&models.FriendEdge{}).
				Select("friend_id").
				Where("user_id = ?", userID),
		)

	if excludePending {
		q = q.Where("users.id NOT IN (?)",
			r.db.Model(&models.FriendRequest{}).
				Select("CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END", userID).
				Where("status = ?", models.FriendRequestStatusPending).
				Where("sender_id = ? OR recipient_id = ?", userID, userID),
		)
	}

	var users []models.User
	if err := q.Order("users.id").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
