package service

import (
	"context"

	"babel/internal/models"
	"babel/internal/observability"
	"babel/internal/repository"
)

// FriendService provides friend-request and friendship business logic.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SendRequest creates a pending friend request from userID to targetUserID.
// The pre-checks give friendly messages for the common cases; the unique pair
// index in the repository is what actually holds under concurrent sends.
func (s *FriendService) SendRequest(ctx context.Context, userID, targetUserID uint) (*models.FriendRequest, error) {
	if userID == targetUserID {
		return nil, models.NewValidationError("You can't send a friend request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	already, err := s.friendRepo.AreFriends(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, models.NewConflictError("You are already friends with this user")
	}

	existing, err := s.friendRepo.GetRequestBetween(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("A friend request already exists between you and this user")
	}

	req := &models.FriendRequest{
		SenderID:    userID,
		RecipientID: targetUserID,
		Status:      models.FriendRequestStatusPending,
	}
	if err := s.friendRepo.CreateRequest(ctx, req); err != nil {
		observability.FriendRequests.WithLabelValues("conflict").Inc()
		return nil, err
	}

	observability.FriendRequests.WithLabelValues("sent").Inc()
	return s.friendRepo.GetRequestByID(ctx, req.ID)
}

// AcceptRequest accepts a pending request addressed to userID. Only the
// recipient may accept; anyone else gets a forbidden error even if the
// request exists.
func (s *FriendService) AcceptRequest(ctx context.Context, userID, requestID uint) (*models.FriendRequest, error) {
	req, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.RecipientID != userID {
		return nil, models.NewForbiddenError("You are not authorized to accept this request")
	}

	if err := s.friendRepo.AcceptRequest(ctx, requestID); err != nil {
		return nil, err
	}

	observability.FriendRequests.WithLabelValues("accepted").Inc()
	return s.friendRepo.GetRequestByID(ctx, requestID)
}

// RejectRequest removes a pending request. The recipient rejects, the sender
// cancels; either way the pair becomes free for a future request.
func (s *FriendService) RejectRequest(ctx context.Context, userID, requestID uint) error {
	req, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.RecipientID != userID && req.SenderID != userID {
		return models.NewForbiddenError("You are not authorized to modify this request")
	}
	if req.Status != models.FriendRequestStatusPending {
		return models.NewConflictError("Friend request is not pending")
	}

	if err := s.friendRepo.DeleteRequest(ctx, requestID); err != nil {
		return err
	}

	observability.FriendRequests.WithLabelValues("rejected").Inc()
	return nil
}

// ListIncomingPending returns pending requests addressed to the user.
func (s *FriendService) ListIncomingPending(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.GetIncomingPending(ctx, userID)
}

// ListOutgoingPending returns pending requests sent by the user.
func (s *FriendService) ListOutgoingPending(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.GetOutgoingPending(ctx, userID)
}

// ListAcceptedSentBy returns the user's requests that were accepted.
func (s *FriendService) ListAcceptedSentBy(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.GetAcceptedSentBy(ctx, userID)
}

// ListFriends returns the user's established friends.
func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.GetFriends(ctx, userID)
}
