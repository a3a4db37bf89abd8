package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"picshare/internal/model"
)

type followRepository struct {
	db            *sqlx.DB
	defaultAvatar string
}

func NewFollowRepository(db *sqlx.DB, defaultAvatar string) FollowRepository {
	return &followRepository{db: db, defaultAvatar: defaultAvatar}
}

// Follow inserts the edge if absent. A duplicate insert is a no-op, not an
// error, so calling follow twice leaves exactly one edge.
func (r *followRepository) Follow(ctx context.Context, followerID, followedID string) error {
	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

// Unfollow deletes the edge; deleting a missing edge is a no-op.
func (r *followRepository) Unfollow(ctx context.Context, followerID, followedID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`
	_, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

// Followers returns all users with an edge into userID.
func (r *followRepository) Followers(ctx context.Context, userID string) ([]model.UserSummary, error) {
	query := `
		SELECT u.id, u.username, COALESCE(u.avatar, $2) AS avatar
		FROM follows f
		JOIN users u ON f.follower_id = u.id
		WHERE f.followed_id = $1
	`
	var users []model.UserSummary
	err := r.db.SelectContext(ctx, &users, query, userID, r.defaultAvatar)
	if err != nil {
		return nil, fmt.Errorf("get followers: %w", err)
	}
	return users, nil
}

// Followed returns all users with an edge out of userID.
func (r *followRepository) Followed(ctx context.Context, userID string) ([]model.UserSummary, error) {
	query := `
		SELECT u.id, u.username, COALESCE(u.avatar, $2) AS avatar
		FROM follows f
		JOIN users u ON f.followed_id = u.id
		WHERE f.follower_id = $1
	`
	var users []model.UserSummary
	err := r.db.SelectContext(ctx, &users, query, userID, r.defaultAvatar)
	if err != nil {
		return nil, fmt.Errorf("get followed: %w", err)
	}
	return users, nil
}
