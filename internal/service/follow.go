package service

import (
	"context"
	"fmt"
	"log"

	"picshare/internal/model"
	"picshare/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
}

func NewFollowService(followRepo repository.FollowRepository) *FollowService {
	return &FollowService{followRepo: followRepo}
}

// Follow adds a follower → followed edge. Following an already-followed
// user is a no-op. Self-follow is accepted: the feed query already treats
// the viewer as implicitly followed, so the edge is harmless.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID string) error {
	if err := s.followRepo.Follow(ctx, followerID, followedID); err != nil {
		return fmt.Errorf("follow user: %w", err)
	}
	log.Printf("[FollowService] %s followed %s", followerID, followedID)
	return nil
}

// Unfollow removes the edge; removing a missing edge is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID string) error {
	if err := s.followRepo.Unfollow(ctx, followerID, followedID); err != nil {
		return fmt.Errorf("unfollow user: %w", err)
	}
	log.Printf("[FollowService] %s unfollowed %s", followerID, followedID)
	return nil
}

// Followers lists everyone with an edge into userID.
func (s *FollowService) Followers(ctx context.Context, userID string) ([]model.UserSummary, error) {
	users, err := s.followRepo.Followers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get followers: %w", err)
	}
	if users == nil {
		users = []model.UserSummary{}
	}
	return users, nil
}

// Followed lists everyone with an edge out of userID.
func (s *FollowService) Followed(ctx context.Context, userID string) ([]model.UserSummary, error) {
	users, err := s.followRepo.Followed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get followed: %w", err)
	}
	if users == nil {
		users = []model.UserSummary{}
	}
	return users, nil
}
