// Package service implements the business rules on top of the repositories.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"babel/internal/chatsync"
	"babel/internal/middleware"
	"babel/internal/models"
	"babel/internal/observability"
	"babel/internal/repository"
	"babel/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides account and profile business logic.
type UserService struct {
	userRepo repository.UserRepository
	chatSync chatsync.Syncer
}

// SignupInput carries the fields accepted at account creation.
type SignupInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OnboardingInput carries the profile fields required to finish onboarding.
type OnboardingInput struct {
	FullName         string `json:"full_name"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"native_language"`
	LearningLanguage string `json:"learning_language"`
	Location         string `json:"location"`
	ProfilePic       string `json:"profile_pic"`
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, chatSync chatsync.Syncer) *UserService {
	if chatSync == nil {
		chatSync = chatsync.NoopSyncer{}
	}
	return &UserService{userRepo: userRepo, chatSync: chatSync}
}

// randomAvatarURL picks one of the hundred stock avatars.
func randomAvatarURL() string {
	return fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", rand.Intn(100)+1)
}

// CreateAccount validates the input, hashes the password and stores the new
// user. The plaintext password never leaves this function.
func (s *UserService) CreateAccount(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateFullName(in.FullName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Password:   string(hash),
		FullName:   strings.TrimSpace(in.FullName),
		ProfilePic: randomAvatarURL(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.SignupsTotal.Inc()
	s.syncIdentity(ctx, user)
	return user, nil
}

// VerifyCredentials checks an email and password pair. A missing account and a
// wrong password return the same error so the response never reveals whether
// the email is registered.
func (s *UserService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	invalid := models.NewUnauthorizedError("Invalid email or password")

	if email == "" || password == "" {
		return nil, models.NewValidationError("All fields are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, invalid
	}
	return user, nil
}

// GetUserByID fetches a user.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Onboard completes a profile. Every profile field is required; missing ones
// are named in the error so the client can highlight them.
func (s *UserService) Onboard(ctx context.Context, userID uint, in OnboardingInput) (*models.User, error) {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"full_name", in.FullName},
		{"bio", in.Bio},
		{"native_language", in.NativeLanguage},
		{"learning_language", in.LearningLanguage},
		{"location", in.Location},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, models.NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}
	if err := validation.ValidateFullName(in.FullName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = strings.TrimSpace(in.FullName)
	user.Bio = in.Bio
	user.NativeLanguage = in.NativeLanguage
	user.LearningLanguage = in.LearningLanguage
	user.Location = in.Location
	if in.ProfilePic != "" {
		user.ProfilePic = in.ProfilePic
	}
	user.IsOnboarded = true

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.syncIdentity(ctx, user)
	return user, nil
}

// RecommendUsers lists partner candidates for the user.
func (s *UserService) RecommendUsers(ctx context.Context, userID uint, excludePending bool) ([]models.User, error) {
	return s.userRepo.ListRecommended(ctx, userID, excludePending)
}

// syncIdentity pushes the user's current identity to the chat subsystem.
// Failures are counted and logged; the triggering request still succeeds.
func (s *UserService) syncIdentity(ctx context.Context, user *models.User) {
	err := s.chatSync.Upsert(ctx, chatsync.Identity{
		UserID:    user.ID,
		Name:      user.FullName,
		AvatarURL: user.ProfilePic,
	})
	if err != nil {
		observability.ChatSyncFailures.Inc()
		middleware.Logger.WarnContext(ctx, "chat identity sync failed",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()),
		)
	}
}
