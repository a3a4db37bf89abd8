package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"picshare/internal/model"
)

// Function-field mocks: each test assigns only the behaviors it needs,
// everything else falls back to a sane zero response.

type mockUserRepository struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByUsernameFn    func(ctx context.Context, username string) (*model.User, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
	existsByEmailFn    func(ctx context.Context, email string) (bool, error)
	getAllFn           func(ctx context.Context) ([]model.UserSummary, error)
	updateAvatarFn     func(ctx context.Context, userID, avatarURL string) (string, error)

	createCalls []*model.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) GetAll(ctx context.Context) ([]model.UserSummary, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) UpdateAvatar(ctx context.Context, userID, avatarURL string) (string, error) {
	if m.updateAvatarFn != nil {
		return m.updateAvatarFn(ctx, userID, avatarURL)
	}
	return avatarURL, nil
}

type followCall struct {
	FollowerID string
	FollowedID string
}

type mockFollowRepository struct {
	followFn    func(ctx context.Context, followerID, followedID string) error
	unfollowFn  func(ctx context.Context, followerID, followedID string) error
	followersFn func(ctx context.Context, userID string) ([]model.UserSummary, error)
	followedFn  func(ctx context.Context, userID string) ([]model.UserSummary, error)

	followCalls   []followCall
	unfollowCalls []followCall
}

func (m *mockFollowRepository) Follow(ctx context.Context, followerID, followedID string) error {
	m.followCalls = append(m.followCalls, followCall{followerID, followedID})
	if m.followFn != nil {
		return m.followFn(ctx, followerID, followedID)
	}
	return nil
}

func (m *mockFollowRepository) Unfollow(ctx context.Context, followerID, followedID string) error {
	m.unfollowCalls = append(m.unfollowCalls, followCall{followerID, followedID})
	if m.unfollowFn != nil {
		return m.unfollowFn(ctx, followerID, followedID)
	}
	return nil
}

func (m *mockFollowRepository) Followers(ctx context.Context, userID string) ([]model.UserSummary, error) {
	if m.followersFn != nil {
		return m.followersFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockFollowRepository) Followed(ctx context.Context, userID string) ([]model.UserSummary, error) {
	if m.followedFn != nil {
		return m.followedFn(ctx, userID)
	}
	return nil, nil
}

type mockPostRepository struct {
	createFn         func(ctx context.Context, userID string, date time.Time, likes int, message, mediaURL *string) (*model.Post, error)
	addPicturesFn    func(ctx context.Context, postID string, urls []string) ([]model.Picture, error)
	feedRowsFn       func(ctx context.Context, viewerID string) ([]model.PostRow, error)
	authorRowsFn     func(ctx context.Context, authorID string) ([]model.PostRow, error)
	insertLikeFn     func(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error)
	deleteLikeFn     func(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error)
	incrementLikesFn func(ctx context.Context, tx *sqlx.Tx, postID string, delta int) error
	insertCommentFn  func(ctx context.Context, postID, userID, content string) (*model.Comment, error)

	likeDeltas []int
}

func (m *mockPostRepository) Create(ctx context.Context, userID string, date time.Time, likes int, message, mediaURL *string) (*model.Post, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, date, likes, message, mediaURL)
	}
	return &model.Post{ID: "post1", UserID: userID, Date: date, Likes: likes, Message: message, MediaURL: mediaURL}, nil
}

func (m *mockPostRepository) AddPictures(ctx context.Context, postID string, urls []string) ([]model.Picture, error) {
	if m.addPicturesFn != nil {
		return m.addPicturesFn(ctx, postID, urls)
	}
	pics := make([]model.Picture, 0, len(urls))
	for i, u := range urls {
		pics = append(pics, model.Picture{URL: u, Order: i + 1})
	}
	return pics, nil
}

func (m *mockPostRepository) FeedRows(ctx context.Context, viewerID string) ([]model.PostRow, error) {
	if m.feedRowsFn != nil {
		return m.feedRowsFn(ctx, viewerID)
	}
	return nil, nil
}

func (m *mockPostRepository) AuthorRows(ctx context.Context, authorID string) ([]model.PostRow, error) {
	if m.authorRowsFn != nil {
		return m.authorRowsFn(ctx, authorID)
	}
	return nil, nil
}

func (m *mockPostRepository) InsertLike(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error) {
	if m.insertLikeFn != nil {
		return m.insertLikeFn(ctx, tx, userID, postID)
	}
	return false, nil
}

func (m *mockPostRepository) DeleteLike(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error) {
	if m.deleteLikeFn != nil {
		return m.deleteLikeFn(ctx, tx, userID, postID)
	}
	return false, nil
}

func (m *mockPostRepository) IncrementLikes(ctx context.Context, tx *sqlx.Tx, postID string, delta int) error {
	m.likeDeltas = append(m.likeDeltas, delta)
	if m.incrementLikesFn != nil {
		return m.incrementLikesFn(ctx, tx, postID, delta)
	}
	return nil
}

func (m *mockPostRepository) InsertComment(ctx context.Context, postID, userID, content string) (*model.Comment, error) {
	if m.insertCommentFn != nil {
		return m.insertCommentFn(ctx, postID, userID, content)
	}
	return &model.Comment{ID: "comment1", UserID: userID, Content: content}, nil
}

type mockStoryRepository struct {
	createFn      func(ctx context.Context, story *model.Story) (*model.Story, error)
	attachMediaFn func(ctx context.Context, storyID, url string) (string, error)
	feedRowsFn    func(ctx context.Context, viewerID string) ([]model.StoryRow, error)
}

func (m *mockStoryRepository) Create(ctx context.Context, story *model.Story) (*model.Story, error) {
	if m.createFn != nil {
		return m.createFn(ctx, story)
	}
	story.ID = "story1"
	return story, nil
}

func (m *mockStoryRepository) AttachMedia(ctx context.Context, storyID, url string) (string, error) {
	if m.attachMediaFn != nil {
		return m.attachMediaFn(ctx, storyID, url)
	}
	return url, nil
}

func (m *mockStoryRepository) FeedRows(ctx context.Context, viewerID string) ([]model.StoryRow, error) {
	if m.feedRowsFn != nil {
		return m.feedRowsFn(ctx, viewerID)
	}
	return nil, nil
}

type mockNotificationRepository struct {
	createFn        func(ctx context.Context, n *model.Notification) (*model.Notification, error)
	getAllForUserFn func(ctx context.Context, userID string) ([]model.Notification, error)
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	n.ID = "notif1"
	return n, nil
}

func (m *mockNotificationRepository) GetAllForUser(ctx context.Context, userID string) ([]model.Notification, error) {
	if m.getAllForUserFn != nil {
		return m.getAllForUserFn(ctx, userID)
	}
	return nil, nil
}
