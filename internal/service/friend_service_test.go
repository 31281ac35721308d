package service

import (
	"context"
	"errors"
	"testing"

	"babel/internal/models"
)

type friendRepoStub struct {
	createRequestFn     func(context.Context, *models.FriendRequest) error
	getRequestByIDFn    func(context.Context, uint) (*models.FriendRequest, error)
	getRequestBetweenFn func(context.Context, uint, uint) (*models.FriendRequest, error)
	acceptRequestFn     func(context.Context, uint) error
	deleteRequestFn     func(context.Context, uint) error
	getIncomingFn       func(context.Context, uint) ([]models.FriendRequest, error)
	getOutgoingFn       func(context.Context, uint) ([]models.FriendRequest, error)
	getAcceptedSentFn   func(context.Context, uint) ([]models.FriendRequest, error)
	areFriendsFn        func(context.Context, uint, uint) (bool, error)
	getFriendsFn        func(context.Context, uint) ([]models.User, error)
}

func (s *friendRepoStub) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	return s.createRequestFn(ctx, req)
}
func (s *friendRepoStub) GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	return s.getRequestByIDFn(ctx, id)
}
func (s *friendRepoStub) GetRequestBetween(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error) {
	return s.getRequestBetweenFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) AcceptRequest(ctx context.Context, requestID uint) error {
	return s.acceptRequestFn(ctx, requestID)
}
func (s *friendRepoStub) DeleteRequest(ctx context.Context, requestID uint) error {
	return s.deleteRequestFn(ctx, requestID)
}
func (s *friendRepoStub) GetIncomingPending(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.getIncomingFn(ctx, userID)
}
func (s *friendRepoStub) GetOutgoingPending(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.getOutgoingFn(ctx, userID)
}
func (s *friendRepoStub) GetAcceptedSentBy(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.getAcceptedSentFn(ctx, userID)
}
func (s *friendRepoStub) AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error) {
	return s.areFriendsFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFriendsFn(ctx, userID)
}

type userRepoStub struct {
	createFn          func(context.Context, *models.User) error
	getByIDFn         func(context.Context, uint) (*models.User, error)
	getByEmailFn      func(context.Context, string) (*models.User, error)
	updateFn          func(context.Context, *models.User) error
	updatePasswordFn  func(context.Context, uint, string) error
	listRecommendedFn func(context.Context, uint, bool) ([]models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	return s.updatePasswordFn(ctx, userID, hash)
}
func (s *userRepoStub) ListRecommended(ctx context.Context, userID uint, excludePending bool) ([]models.User, error) {
	return s.listRecommendedFn(ctx, userID, excludePending)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:          func(context.Context, *models.User) error { return nil },
		getByIDFn:         func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:      func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		updateFn:          func(context.Context, *models.User) error { return nil },
		updatePasswordFn:  func(context.Context, uint, string) error { return nil },
		listRecommendedFn: func(context.Context, uint, bool) ([]models.User, error) { return nil, nil },
	}
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createRequestFn:     func(context.Context, *models.FriendRequest) error { return nil },
		getRequestByIDFn:    func(context.Context, uint) (*models.FriendRequest, error) { return &models.FriendRequest{}, nil },
		getRequestBetweenFn: func(context.Context, uint, uint) (*models.FriendRequest, error) { return nil, nil },
		acceptRequestFn:     func(context.Context, uint) error { return nil },
		deleteRequestFn:     func(context.Context, uint) error { return nil },
		getIncomingFn:       func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		getOutgoingFn:       func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		getAcceptedSentFn:   func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		areFriendsFn:        func(context.Context, uint, uint) (bool, error) { return false, nil },
		getFriendsFn:        func(context.Context, uint) ([]models.User, error) { return nil, nil },
	}
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s app error, got %#v", code, err)
	}
}

func TestFriendServiceSendRequestSelf(t *testing.T) {
	svc := NewFriendService(noopFriendRepo(), noopUserRepo())
	_, err := svc.SendRequest(context.Background(), 3, 3)
	expectCode(t, err, "VALIDATION_ERROR")
}

func TestFriendServiceSendRequestMissingRecipient(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", 9)
	}

	svc := NewFriendService(noopFriendRepo(), users)
	_, err := svc.SendRequest(context.Background(), 1, 9)
	expectCode(t, err, "NOT_FOUND")
}

func TestFriendServiceSendRequestAlreadyFriends(t *testing.T) {
	repo := noopFriendRepo()
	repo.areFriendsFn = func(context.Context, uint, uint) (bool, error) { return true, nil }

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.SendRequest(context.Background(), 1, 2)
	expectCode(t, err, "CONFLICT")
}

func TestFriendServiceSendRequestDuplicatePair(t *testing.T) {
	repo := noopFriendRepo()
	repo.getRequestBetweenFn = func(context.Context, uint, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 4, SenderID: 2, RecipientID: 1, Status: models.FriendRequestStatusPending}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.SendRequest(context.Background(), 1, 2)
	expectCode(t, err, "CONFLICT")
}

func TestFriendServiceSendRequestSuccess(t *testing.T) {
	repo := noopFriendRepo()
	repo.createRequestFn = func(_ context.Context, req *models.FriendRequest) error {
		req.ID = 42
		return nil
	}
	repo.getRequestByIDFn = func(_ context.Context, id uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: id, SenderID: 1, RecipientID: 2, Status: models.FriendRequestStatusPending}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	req, err := svc.SendRequest(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.ID != 42 || req.Status != models.FriendRequestStatusPending {
		t.Fatalf("unexpected request %#v", req)
	}
}

func TestFriendServiceAcceptForbiddenForNonRecipient(t *testing.T) {
	repo := noopFriendRepo()
	repo.getRequestByIDFn = func(context.Context, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 5, SenderID: 10, RecipientID: 11, Status: models.FriendRequestStatusPending}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())

	// Not even the sender may accept their own request.
	for _, caller := range []uint{10, 12} {
		_, err := svc.AcceptRequest(context.Background(), caller, 5)
		expectCode(t, err, "FORBIDDEN")
	}
}

func TestFriendServiceAcceptNonPending(t *testing.T) {
	repo := noopFriendRepo()
	repo.getRequestByIDFn = func(context.Context, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 5, SenderID: 10, RecipientID: 11, Status: models.FriendRequestStatusAccepted}, nil
	}
	repo.acceptRequestFn = func(context.Context, uint) error {
		return models.NewConflictError("Friend request is not pending")
	}

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.AcceptRequest(context.Background(), 11, 5)
	expectCode(t, err, "CONFLICT")
}

func TestFriendServiceRejectAllowsSenderCancel(t *testing.T) {
	deleted := false
	repo := noopFriendRepo()
	repo.getRequestByIDFn = func(context.Context, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 7, SenderID: 1, RecipientID: 2, Status: models.FriendRequestStatusPending}, nil
	}
	repo.deleteRequestFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	if err := svc.RejectRequest(context.Background(), 1, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected request to be deleted")
	}
}

func TestFriendServiceRejectForbiddenForStranger(t *testing.T) {
	repo := noopFriendRepo()
	repo.getRequestByIDFn = func(context.Context, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 7, SenderID: 1, RecipientID: 2, Status: models.FriendRequestStatusPending}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	err := svc.RejectRequest(context.Background(), 3, 7)
	expectCode(t, err, "FORBIDDEN")
}
