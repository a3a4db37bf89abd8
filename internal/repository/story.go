package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"picshare/internal/model"
)

type storyRepository struct {
	db            *sqlx.DB
	defaultAvatar string
}

func NewStoryRepository(db *sqlx.DB, defaultAvatar string) StoryRepository {
	return &storyRepository{db: db, defaultAvatar: defaultAvatar}
}

// Create inserts a new story.
func (r *storyRepository) Create(ctx context.Context, story *model.Story) (*model.Story, error) {
	query := `
		INSERT INTO stories (id, user_id, date, type, expiration_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, date, type, expiration_date
	`
	var created model.Story
	err := r.db.GetContext(ctx, &created, query,
		uuid.NewString(), story.UserID, story.Date, story.Type, story.ExpirationDate)
	if err != nil {
		return nil, fmt.Errorf("insert story: %w", err)
	}
	return &created, nil
}

// AttachMedia stores the story's single media attachment.
func (r *storyRepository) AttachMedia(ctx context.Context, storyID, url string) (string, error) {
	query := `
		INSERT INTO story_media (id, url, story_id)
		VALUES ($1, $2, $3)
		RETURNING url
	`
	var mediaURL string
	err := r.db.GetContext(ctx, &mediaURL, query, uuid.NewString(), url, storyID)
	if err != nil {
		return "", fmt.Errorf("insert story media: %w", err)
	}
	return mediaURL, nil
}

type storyRowRecord struct {
	StoryID        string         `db:"story_id"`
	UserID         string         `db:"user_id"`
	Username       string         `db:"username"`
	UserAvatar     string         `db:"user_avatar"`
	Date           time.Time      `db:"story_date"`
	Type           string         `db:"story_type"`
	ExpirationDate time.Time      `db:"expiration_date"`
	MediaURL       sql.NullString `db:"media_url"`
}

// FeedRows selects the flat stories×media join scoped by the viewer's
// follow graph, skipping expired stories. Ordering is the assembler's
// grouping contract: authors by username ascending, each author's stories
// by date descending.
func (r *storyRepository) FeedRows(ctx context.Context, viewerID string) ([]model.StoryRow, error) {
	query := `
		SELECT
			s.id AS story_id,
			s.user_id,
			u.username,
			COALESCE(u.avatar, $2) AS user_avatar,
			s.date AS story_date,
			s.type AS story_type,
			s.expiration_date,
			sm.url AS media_url
		FROM stories s
		LEFT JOIN story_media sm ON s.id = sm.story_id
		LEFT JOIN users u ON s.user_id = u.id
		WHERE
			(
				s.user_id IN (
					SELECT followed_id
					FROM follows
					WHERE follower_id = $1
				)
				OR s.user_id = $1
			)
			AND s.expiration_date > NOW()
		ORDER BY u.username ASC, s.date DESC
	`
	var records []storyRowRecord
	err := r.db.SelectContext(ctx, &records, query, viewerID, r.defaultAvatar)
	if err != nil {
		return nil, fmt.Errorf("select story rows: %w", err)
	}

	rows := make([]model.StoryRow, len(records))
	for i, rec := range records {
		row := model.StoryRow{
			StoryID:        rec.StoryID,
			UserID:         rec.UserID,
			Username:       rec.Username,
			UserAvatar:     rec.UserAvatar,
			Date:           rec.Date,
			Type:           rec.Type,
			ExpirationDate: rec.ExpirationDate,
		}
		if rec.MediaURL.Valid {
			row.MediaURL = &rec.MediaURL.String
		}
		rows[i] = row
	}
	return rows, nil
}
