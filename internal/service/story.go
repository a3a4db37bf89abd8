package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"picshare/internal/model"
	"picshare/internal/repository"
)

type StoryService struct {
	storyRepo repository.StoryRepository
}

func NewStoryService(storyRepo repository.StoryRepository) *StoryService {
	return &StoryService{storyRepo: storyRepo}
}

// Create inserts a new story with its optional media attachment. Type
// defaults to image; expiration defaults to 24h from creation.
func (s *StoryService) Create(ctx context.Context, userID, storyType string, mediaURL *string) (*model.Story, error) {
	if storyType == "" {
		storyType = model.StoryTypeImage
	}
	if storyType != model.StoryTypeImage && storyType != model.StoryTypeVideo {
		return nil, model.ErrInvalidStoryType
	}

	now := time.Now()
	story, err := s.storyRepo.Create(ctx, &model.Story{
		UserID:         userID,
		Date:           now,
		Type:           storyType,
		ExpirationDate: now.Add(model.StoryTTL),
	})
	if err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}

	if mediaURL != nil {
		url, err := s.storyRepo.AttachMedia(ctx, story.ID, *mediaURL)
		if err != nil {
			return nil, fmt.Errorf("save story media: %w", err)
		}
		story.MediaURL = &url
	}

	log.Printf("[StoryService] User %s created %s story %s", userID, story.Type, story.ID)
	return story, nil
}
