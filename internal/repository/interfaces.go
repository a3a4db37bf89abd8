package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"picshare/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context) ([]model.UserSummary, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL string) (string, error)
}

type FollowRepository interface {
	// Follow inserts the edge if absent; inserting an existing edge is a no-op.
	Follow(ctx context.Context, followerID, followedID string) error
	// Unfollow deletes the edge; deleting a missing edge is a no-op.
	Unfollow(ctx context.Context, followerID, followedID string) error
	Followers(ctx context.Context, userID string) ([]model.UserSummary, error)
	Followed(ctx context.Context, userID string) ([]model.UserSummary, error)
}

type PostRepository interface {
	Create(ctx context.Context, userID string, date time.Time, likes int, message, mediaURL *string) (*model.Post, error)
	// AddPictures assigns upload orders as current-max+1 under a row lock on
	// the parent post, so concurrent uploads to one post cannot collide.
	AddPictures(ctx context.Context, postID string, urls []string) ([]model.Picture, error)

	// FeedRows returns the flat join for posts authored by viewerID or by
	// anyone viewerID follows, ordered by date desc then picture order asc.
	FeedRows(ctx context.Context, viewerID string) ([]model.PostRow, error)
	// AuthorRows is the same join scoped to a single author.
	AuthorRows(ctx context.Context, authorID string) ([]model.PostRow, error)

	// Like-edge operations share a transaction with the counter update.
	InsertLike(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error)
	DeleteLike(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error)
	IncrementLikes(ctx context.Context, tx *sqlx.Tx, postID string, delta int) error

	InsertComment(ctx context.Context, postID, userID, content string) (*model.Comment, error)
}

type StoryRepository interface {
	Create(ctx context.Context, story *model.Story) (*model.Story, error)
	AttachMedia(ctx context.Context, storyID, url string) (string, error)
	// FeedRows returns the flat stories×media join for authors the viewer
	// follows (or the viewer), ordered by username asc then date desc.
	FeedRows(ctx context.Context, viewerID string) ([]model.StoryRow, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	// GetAllForUser returns the recipient's notifications newest-first with
	// sender identity joined in.
	GetAllForUser(ctx context.Context, userID string) ([]model.Notification, error)
}
