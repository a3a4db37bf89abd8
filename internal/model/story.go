package model

import (
	"errors"
	"time"
)

// Story types
const (
	StoryTypeImage = "image"
	StoryTypeVideo = "video"
)

// StoryTTL is the default lifetime of a story from creation.
const StoryTTL = 24 * time.Hour

// Story is an ephemeral post with at most one media attachment.
type Story struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	Date           time.Time `db:"date" json:"date"`
	Type           string    `db:"type" json:"type"`
	ExpirationDate time.Time `db:"expiration_date" json:"expiration_date"`
	MediaURL       *string   `json:"mediaUrl"`
}

// StoryRow is one flat row of the stories×media×users join.
type StoryRow struct {
	StoryID        string
	UserID         string
	Username       string
	UserAvatar     string
	Date           time.Time
	Type           string
	ExpirationDate time.Time
	MediaURL       *string
}

// AuthorStories groups one author's stories for the stories feed:
// authors ordered by username, stories by date descending.
type AuthorStories struct {
	UserID     string  `json:"userId"`
	Username   string  `json:"username"`
	UserAvatar string  `json:"userAvatar"`
	Stories    []Story `json:"stories"`
}

var (
	// ErrNoStoriesFound is returned when the stories feed query matches nothing
	ErrNoStoriesFound = errors.New("no stories found")

	// ErrInvalidStoryType is returned for a type other than image or video
	ErrInvalidStoryType = errors.New("invalid story type")
)
