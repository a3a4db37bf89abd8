package model

import (
	"errors"
	"time"
)

// Post represents a post row as stored, without joined children.
type Post struct {
	ID       string    `db:"id" json:"id"`
	UserID   string    `db:"user_id" json:"user_id"`
	Date     time.Time `db:"date" json:"date"`
	Likes    int       `db:"likes" json:"likes"`
	Message  *string   `db:"message" json:"message"`
	MediaURL *string   `db:"url_media_image" json:"urlMediaImage"` // legacy single-image field

	// Populated after picture upload, not stored on the posts table
	Pictures []Picture `json:"pictures,omitempty"`
}

// Picture is a single image attached to a post. Order is unique within
// a post and defines display sequence.
type Picture struct {
	URL   string `db:"url" json:"url"`
	Order int    `db:"upload_order" json:"order"`
}

// Comment is a comment on a post with its author identity joined in.
type Comment struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	Username   string    `db:"username" json:"username"`
	UserAvatar string    `db:"user_avatar" json:"userAvatar"`
	Content    string    `db:"content" json:"content"`
	Date       time.Time `db:"date" json:"date"`
}

// PostAggregate is the nested, client-ready shape assembled from flat
// join rows: pictures in upload order, comments in first-seen order,
// likes as a set of user ids.
type PostAggregate struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	UserAvatar string    `json:"userAvatar"`
	Message    *string   `json:"message"`
	Date       time.Time `json:"date"`
	Pictures   []Picture `json:"pictures"`
	Comments   []Comment `json:"comments"`
	Likes      []string  `json:"likes"`
}

// PostRow is one flat row of the posts×pictures×comments×likes join.
// Optional fields are nil when the corresponding join branch produced
// no match, so the assembler matches on presence instead of zero values.
type PostRow struct {
	PostID     string
	UserID     string
	Username   string
	UserAvatar string
	Message    *string
	MediaURL   *string
	Date       time.Time

	Picture    *Picture
	Comment    *Comment
	LikeUserID *string
}

// CreatePostRequest is the request body for creating a post.
// Pictures arrive separately as multipart files.
type CreatePostRequest struct {
	Message  *string `json:"message"`
	MediaURL *string `json:"urlMediaImage"`
}

// LikeResult reports the outcome of a like toggle.
type LikeResult string

const (
	LikeAdded   LikeResult = "added"
	LikeRemoved LikeResult = "removed"
)

const MaxPostMessageLength = 500

var (
	// ErrNoPostsFound is returned when the global feed query matches nothing.
	// The single-author feed returns an empty slice instead.
	ErrNoPostsFound = errors.New("no posts found")

	// ErrPostNotFound is returned when a referenced post does not exist
	ErrPostNotFound = errors.New("post not found")

	// ErrMessageTooLong is returned when a post message exceeds the limit
	ErrMessageTooLong = errors.New("message is too long")

	// ErrContentRequired is returned when a comment has no content
	ErrContentRequired = errors.New("comment content is required")
)
