package repository

import (
	"context"
	"errors"

	"babel/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRepository defines data access operations for friend requests and
// friendships.
type FriendRepository interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) error
	GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error)
	GetRequestBetween(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error)
	AcceptRequest(ctx context.Context, requestID uint) error
	DeleteRequest(ctx context.Context, requestID uint) error
	GetIncomingPending(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	GetOutgoingPending(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	GetAcceptedSentBy(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error)
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

// CreateRequest inserts a pending request. The unique index on the pair key
// turns a concurrent duplicate (either direction) into a conflict here instead
// of a second row.
func (r *friendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("A friend request already exists between you and this user")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		First(&req, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

// GetRequestBetween finds the request for an unordered pair, if any.
func (r *friendRepository) GetRequestBetween(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("pair_key = ?", models.PairKeyFor(userID1, userID2)).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

// AcceptRequest flips a pending request to accepted and writes both friendship
// rows in one transaction. The guarded UPDATE makes the transition idempotent
// under races: only the caller that actually moved the row out of pending
// proceeds, any concurrent accept sees zero rows affected and conflicts.
func (r *friendRepository) AcceptRequest(ctx context.Context, requestID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.FriendRequest
		if err := tx.First(&req, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Friend request", requestID)
			}
			return models.NewInternalError(err)
		}

		res := tx.Model(&models.FriendRequest{}).
			Where("id = ? AND status = ?", requestID, models.FriendRequestStatusPending).
			Update("status", models.FriendRequestStatusAccepted)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewConflictError("Friend request is not pending")
		}

		edges := []models.FriendEdge{
			{UserID: req.SenderID, FriendID: req.RecipientID},
			{UserID: req.RecipientID, FriendID: req.SenderID},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edges).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

// DeleteRequest removes a request row. Used for both reject (recipient) and
// cancel (sender); a later re-send starts a fresh pending request.
func (r *friendRepository) DeleteRequest(ctx context.Context, requestID uint) error {
	res := r.db.WithContext(ctx).Delete(&models.FriendRequest{}, requestID)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Friend request", requestID)
	}
	return nil
}

func (r *friendRepository) GetIncomingPending(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("recipient_id = ? AND status = ?", userID, models.FriendRequestStatusPending).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *friendRepository) GetOutgoingPending(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("Recipient").
		Where("sender_id = ? AND status = ?", userID, models.FriendRequestStatusPending).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

// GetAcceptedSentBy lists this user's requests that the other side accepted,
// which is what powers the "new connections" notification feed.
func (r *friendRepository) GetAcceptedSentBy(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("Recipient").
		Where("sender_id = ? AND status = ?", userID, models.FriendRequestStatusAccepted).
		Order("updated_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *friendRepository) AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FriendEdge{}).
		Where("user_id = ? AND friend_id = ?", userID1, userID2).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *friendRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN user_friends ON user_friends.friend_id = users.id").
		Where("user_friends.user_id = ?", userID).
		Order("user_friends.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
