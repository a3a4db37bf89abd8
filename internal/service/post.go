package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"picshare/internal/model"
	"picshare/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	db       *sqlx.DB
}

func NewPostService(postRepo repository.PostRepository, db *sqlx.DB) *PostService {
	return &PostService{
		postRepo: postRepo,
		db:       db,
	}
}

// Create inserts a new post and attaches its uploaded pictures.
func (s *PostService) Create(ctx context.Context, userID string, req model.CreatePostRequest, pictureURLs []string) (*model.Post, error) {
	if req.Message != nil && len(*req.Message) > model.MaxPostMessageLength {
		return nil, model.ErrMessageTooLong
	}

	post, err := s.postRepo.Create(ctx, userID, time.Now(), 0, req.Message, req.MediaURL)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if len(pictureURLs) > 0 {
		pictures, err := s.postRepo.AddPictures(ctx, post.ID, pictureURLs)
		if err != nil {
			return nil, fmt.Errorf("save pictures: %w", err)
		}
		post.Pictures = pictures
	}

	log.Printf("[PostService] User %s created post %s (%d pictures)", userID, post.ID, len(post.Pictures))
	return post, nil
}

// ToggleLike flips the (user, post) like edge. The edge write and the
// denormalized counter move in one transaction; the unique constraint on
// the edge makes concurrent toggles resolve to insert-or-delete rather
// than a lost update.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (model.LikeResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	inserted, err := s.postRepo.InsertLike(ctx, tx, userID, postID)
	if err != nil {
		return "", err
	}

	result := model.LikeAdded
	if inserted {
		if err := s.postRepo.IncrementLikes(ctx, tx, postID, 1); err != nil {
			return "", err
		}
	} else {
		deleted, err := s.postRepo.DeleteLike(ctx, tx, userID, postID)
		if err != nil {
			return "", err
		}
		// A concurrent toggle may have removed the edge already; the
		// counter only moves when this transaction deleted a row.
		if deleted {
			if err := s.postRepo.IncrementLikes(ctx, tx, postID, -1); err != nil {
				return "", err
			}
		}
		result = model.LikeRemoved
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}

	log.Printf("[PostService] User %s toggled like on post %s: %s", userID, postID, result)
	return result, nil
}

// AddComment appends a comment and returns it enriched with the author's
// username and avatar.
func (s *PostService) AddComment(ctx context.Context, postID, userID, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, model.ErrContentRequired
	}

	comment, err := s.postRepo.InsertComment(ctx, postID, userID, content)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	log.Printf("[PostService] User %s commented on post %s", userID, postID)
	return comment, nil
}
