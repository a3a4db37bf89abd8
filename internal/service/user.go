package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"picshare/internal/model"
	"picshare/internal/repository"
)

// UserService handles account registration, login and profile updates.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// Register creates a new account. Username and email collisions are
// rejected with their dedicated errors.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	if len(username) < model.MinUsernameLength || len(username) > model.MaxUsernameLength {
		return nil, model.ErrInvalidUsername
	}
	if len(req.Password) < model.MinPasswordLength {
		return nil, model.ErrInvalidPasswordFormat
	}
	if req.Email == "" || len(req.Email) > model.MaxEmailLength || !strings.Contains(req.Email, "@") {
		return nil, model.ErrInvalidEmail
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and returns the account. The error
// distinguishes a missing user from a wrong password, matching the
// upstream client contract.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidPassword
	}

	return user, nil
}

// GetAll lists every user, marking which ones the viewer already follows.
func (s *UserService) GetAll(ctx context.Context, viewerID string) ([]model.UserSummary, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	followed, err := s.followRepo.Followed(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("get followed: %w", err)
	}

	followedIDs := make(map[string]struct{}, len(followed))
	for _, f := range followed {
		followedIDs[f.ID] = struct{}{}
	}
	for i := range users {
		_, users[i].IsFollowing = followedIDs[users[i].ID]
	}

	return users, nil
}

// UpdateAvatar stores the new avatar URL and returns it.
func (s *UserService) UpdateAvatar(ctx context.Context, userID, avatarURL string) (string, error) {
	return s.userRepo.UpdateAvatar(ctx, userID, avatarURL)
}
