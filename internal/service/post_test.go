package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"picshare/internal/model"
)

// =============================================================================
// NO-OP SQL DRIVER
// =============================================================================
//
// ToggleLike opens a real transaction and hands it to the repository, which
// the mock ignores. This driver gives database/sql something to begin and
// commit against without a live database.

type noopDriver struct{}

func (noopDriver) Open(name string) (driver.Conn, error) { return noopConn{}, nil }

type noopConn struct{}

func (noopConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("noop driver does not prepare statements")
}
func (noopConn) Close() error              { return nil }
func (noopConn) Begin() (driver.Tx, error) { return noopTx{}, nil }

type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }

func init() {
	sql.Register("nooptx", noopDriver{})
}

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sql.Open("nooptx", "")
	if err != nil {
		t.Fatalf("open noop db: %v", err)
	}
	return sqlx.NewDb(db, "nooptx")
}

// =============================================================================
// CREATE
// =============================================================================

func TestPostService_Create_WithPictures(t *testing.T) {
	var addedURLs []string
	mockRepo := &mockPostRepository{
		addPicturesFn: func(ctx context.Context, postID string, urls []string) ([]model.Picture, error) {
			addedURLs = urls
			pics := make([]model.Picture, 0, len(urls))
			for i, u := range urls {
				pics = append(pics, model.Picture{URL: u, Order: i + 1})
			}
			return pics, nil
		},
	}
	svc := NewPostService(mockRepo, newTestDB(t))

	message := "hello"
	post, err := svc.Create(context.Background(), "user1", model.CreatePostRequest{Message: &message},
		[]string{"a.jpg", "b.jpg"})

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(addedURLs) != 2 {
		t.Errorf("AddPictures got %d urls, want 2", len(addedURLs))
	}
	if len(post.Pictures) != 2 {
		t.Errorf("post pictures = %d, want 2", len(post.Pictures))
	}
	if post.Pictures[0].Order != 1 || post.Pictures[1].Order != 2 {
		t.Errorf("picture orders = [%d %d], want [1 2]", post.Pictures[0].Order, post.Pictures[1].Order)
	}
}

func TestPostService_Create_MessageTooLong(t *testing.T) {
	svc := NewPostService(&mockPostRepository{}, newTestDB(t))

	message := strings.Repeat("x", model.MaxPostMessageLength+1)
	_, err := svc.Create(context.Background(), "user1", model.CreatePostRequest{Message: &message}, nil)

	if !errors.Is(err, model.ErrMessageTooLong) {
		t.Errorf("error = %v, want ErrMessageTooLong", err)
	}
}

func TestPostService_Create_NoPictures(t *testing.T) {
	addPicturesCalled := false
	mockRepo := &mockPostRepository{
		addPicturesFn: func(ctx context.Context, postID string, urls []string) ([]model.Picture, error) {
			addPicturesCalled = true
			return nil, nil
		},
	}
	svc := NewPostService(mockRepo, newTestDB(t))

	_, err := svc.Create(context.Background(), "user1", model.CreatePostRequest{}, nil)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if addPicturesCalled {
		t.Error("AddPictures must not be called for a post without pictures")
	}
}

// =============================================================================
// LIKE TOGGLE
// =============================================================================

func TestPostService_ToggleLike_Added(t *testing.T) {
	mockRepo := &mockPostRepository{
		insertLikeFn: func(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error) {
			return true, nil
		},
	}
	svc := NewPostService(mockRepo, newTestDB(t))

	result, err := svc.ToggleLike(context.Background(), "user1", "post1")

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result != model.LikeAdded {
		t.Errorf("result = %q, want %q", result, model.LikeAdded)
	}
	if len(mockRepo.likeDeltas) != 1 || mockRepo.likeDeltas[0] != 1 {
		t.Errorf("counter deltas = %v, want [1]", mockRepo.likeDeltas)
	}
}

func TestPostService_ToggleLike_Removed(t *testing.T) {
	mockRepo := &mockPostRepository{
		insertLikeFn: func(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error) {
			return false, nil // edge already exists
		},
		deleteLikeFn: func(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error) {
			return true, nil
		},
	}
	svc := NewPostService(mockRepo, newTestDB(t))

	result, err := svc.ToggleLike(context.Background(), "user1", "post1")

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result != model.LikeRemoved {
		t.Errorf("result = %q, want %q", result, model.LikeRemoved)
	}
	if len(mockRepo.likeDeltas) != 1 || mockRepo.likeDeltas[0] != -1 {
		t.Errorf("counter deltas = %v, want [-1]", mockRepo.likeDeltas)
	}
}

// When a concurrent toggle deletes the edge between this transaction's
// failed insert and its delete, the delete affects zero rows and the
// counter must not move.
func TestPostService_ToggleLike_ConcurrentRemoval(t *testing.T) {
	mockRepo := &mockPostRepository{
		insertLikeFn: func(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error) {
			return false, nil
		},
		deleteLikeFn: func(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error) {
			return false, nil // someone else already deleted it
		},
	}
	svc := NewPostService(mockRepo, newTestDB(t))

	result, err := svc.ToggleLike(context.Background(), "user1", "post1")

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result != model.LikeRemoved {
		t.Errorf("result = %q, want %q", result, model.LikeRemoved)
	}
	if len(mockRepo.likeDeltas) != 0 {
		t.Errorf("counter deltas = %v, want none", mockRepo.likeDeltas)
	}
}

// An add followed by a remove leaves the counter where it started.
func TestPostService_ToggleLike_RoundTrip(t *testing.T) {
	liked := false
	mockRepo := &mockPostRepository{}
	mockRepo.insertLikeFn = func(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error) {
		if liked {
			return false, nil
		}
		liked = true
		return true, nil
	}
	mockRepo.deleteLikeFn = func(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error) {
		if !liked {
			return false, nil
		}
		liked = false
		return true, nil
	}
	svc := NewPostService(mockRepo, newTestDB(t))

	first, err := svc.ToggleLike(context.Background(), "user1", "post1")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	second, err := svc.ToggleLike(context.Background(), "user1", "post1")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}

	if first != model.LikeAdded || second != model.LikeRemoved {
		t.Errorf("toggles = [%s %s], want [added removed]", first, second)
	}
	sum := 0
	for _, d := range mockRepo.likeDeltas {
		sum += d
	}
	if sum != 0 {
		t.Errorf("net counter movement = %d, want 0", sum)
	}
}

func TestPostService_ToggleLike_PostNotFound(t *testing.T) {
	mockRepo := &mockPostRepository{
		insertLikeFn: func(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error) {
			return true, nil
		},
		incrementLikesFn: func(ctx context.Context, tx *sqlx.Tx, postID string, delta int) error {
			return model.ErrPostNotFound
		},
	}
	svc := NewPostService(mockRepo, newTestDB(t))

	_, err := svc.ToggleLike(context.Background(), "user1", "ghost")

	if !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("error = %v, want ErrPostNotFound", err)
	}
}

// =============================================================================
// COMMENTS
// =============================================================================

func TestPostService_AddComment_Success(t *testing.T) {
	mockRepo := &mockPostRepository{
		insertCommentFn: func(ctx context.Context, postID, userID, content string) (*model.Comment, error) {
			return &model.Comment{
				ID:       "c1",
				UserID:   userID,
				Username: "alice",
				Content:  content,
				Date:     time.Now(),
			}, nil
		},
	}
	svc := NewPostService(mockRepo, newTestDB(t))

	comment, err := svc.AddComment(context.Background(), "post1", "user1", "nice shot")

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if comment.Content != "nice shot" {
		t.Errorf("content = %q, want %q", comment.Content, "nice shot")
	}
	if comment.Username != "alice" {
		t.Errorf("username = %q, want alice (author identity must be joined in)", comment.Username)
	}
}

func TestPostService_AddComment_EmptyContent(t *testing.T) {
	svc := NewPostService(&mockPostRepository{}, newTestDB(t))

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.AddComment(context.Background(), "post1", "user1", content)
		if !errors.Is(err, model.ErrContentRequired) {
			t.Errorf("content %q: error = %v, want ErrContentRequired", content, err)
		}
	}
}
