package service

import (
	"context"
	"errors"
	"testing"

	"picshare/internal/model"
)

func TestFollowService_Follow_RepeatIsNoop(t *testing.T) {
	mockRepo := &mockFollowRepository{}
	svc := NewFollowService(mockRepo)

	// The repository absorbs duplicate edges, so repeating the call
	// must succeed both times.
	if err := svc.Follow(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("first follow: %v", err)
	}
	if err := svc.Follow(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("second follow: %v", err)
	}

	if len(mockRepo.followCalls) != 2 {
		t.Errorf("repo Follow called %d times, want 2", len(mockRepo.followCalls))
	}
	if mockRepo.followCalls[0] != (followCall{"alice", "bob"}) {
		t.Errorf("edge = %+v, want alice → bob", mockRepo.followCalls[0])
	}
}

func TestFollowService_Unfollow_MissingEdgeIsNoop(t *testing.T) {
	mockRepo := &mockFollowRepository{}
	svc := NewFollowService(mockRepo)

	if err := svc.Unfollow(context.Background(), "alice", "stranger"); err != nil {
		t.Fatalf("unfollow missing edge: %v", err)
	}
	if len(mockRepo.unfollowCalls) != 1 {
		t.Errorf("repo Unfollow called %d times, want 1", len(mockRepo.unfollowCalls))
	}
}

// Users with no followers get an empty array, never null.
func TestFollowService_EmptyListsAreNotNil(t *testing.T) {
	svc := NewFollowService(&mockFollowRepository{})

	followers, err := svc.Followers(context.Background(), "loner")
	if err != nil {
		t.Fatalf("followers: %v", err)
	}
	if followers == nil {
		t.Error("followers must be an empty slice, not nil")
	}

	followed, err := svc.Followed(context.Background(), "loner")
	if err != nil {
		t.Fatalf("followed: %v", err)
	}
	if followed == nil {
		t.Error("followed must be an empty slice, not nil")
	}
}

func TestFollowService_Followers_PassesThrough(t *testing.T) {
	mockRepo := &mockFollowRepository{
		followersFn: func(ctx context.Context, userID string) ([]model.UserSummary, error) {
			return []model.UserSummary{
				{ID: "u1", Username: "alice", Avatar: "a.png"},
				{ID: "u2", Username: "bob", Avatar: "b.png"},
			}, nil
		},
	}
	svc := NewFollowService(mockRepo)

	followers, err := svc.Followers(context.Background(), "celebrity")
	if err != nil {
		t.Fatalf("followers: %v", err)
	}
	if len(followers) != 2 {
		t.Fatalf("followers = %d, want 2", len(followers))
	}
	if followers[0].Username != "alice" {
		t.Errorf("first follower = %q, want alice", followers[0].Username)
	}
}

func TestFollowService_Follow_RepoError(t *testing.T) {
	dbErr := errors.New("connection refused")
	mockRepo := &mockFollowRepository{
		followFn: func(ctx context.Context, followerID, followedID string) error {
			return dbErr
		},
	}
	svc := NewFollowService(mockRepo)

	err := svc.Follow(context.Background(), "alice", "bob")
	if !errors.Is(err, dbErr) {
		t.Errorf("error = %v, want wrapped %v", err, dbErr)
	}
}
