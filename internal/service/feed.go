package service

import (
	"context"
	"fmt"

	"picshare/internal/feed"
	"picshare/internal/model"
	"picshare/internal/repository"
)

// FeedService composes the follow-scoped row queries with the aggregate
// assembler.
type FeedService struct {
	postRepo  repository.PostRepository
	storyRepo repository.StoryRepository
}

func NewFeedService(postRepo repository.PostRepository, storyRepo repository.StoryRepository) *FeedService {
	return &FeedService{
		postRepo:  postRepo,
		storyRepo: storyRepo,
	}
}

// ReadFeed returns the nested post aggregates for everything the viewer
// follows plus the viewer's own posts. An empty global feed is an error,
// unlike the single-author case.
func (s *FeedService) ReadFeed(ctx context.Context, viewerID string) ([]model.PostAggregate, error) {
	rows, err := s.postRepo.FeedRows(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	if len(rows) == 0 {
		return nil, model.ErrNoPostsFound
	}
	return feed.AssemblePosts(rows), nil
}

// ReadAuthorFeed returns one author's post aggregates. An author with no
// posts yields an empty slice, not an error.
func (s *FeedService) ReadAuthorFeed(ctx context.Context, authorID string) ([]model.PostAggregate, error) {
	rows, err := s.postRepo.AuthorRows(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("read author feed: %w", err)
	}
	return feed.AssemblePosts(rows), nil
}

// ReadStoriesFeed returns follow-scoped stories grouped by author. Zero
// visible stories is always an error.
func (s *FeedService) ReadStoriesFeed(ctx context.Context, viewerID string) ([]model.AuthorStories, error) {
	rows, err := s.storyRepo.FeedRows(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("read stories feed: %w", err)
	}
	if len(rows) == 0 {
		return nil, model.ErrNoStoriesFound
	}
	return feed.AssembleStories(rows), nil
}
