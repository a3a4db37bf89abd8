package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"picshare/internal/model"
)

type postRepository struct {
	db            *sqlx.DB
	defaultAvatar string
}

func NewPostRepository(db *sqlx.DB, defaultAvatar string) PostRepository {
	return &postRepository{db: db, defaultAvatar: defaultAvatar}
}

// Create inserts a new post.
func (r *postRepository) Create(ctx context.Context, userID string, date time.Time, likes int, message, mediaURL *string) (*model.Post, error) {
	query := `
		INSERT INTO posts (id, user_id, date, likes, message, url_media_image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, date, likes, message, url_media_image
	`
	var post model.Post
	err := r.db.GetContext(ctx, &post, query, uuid.NewString(), userID, date, likes, message, mediaURL)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &post, nil
}

// AddPictures appends pictures to a post, assigning upload orders as
// current-max+1. The parent post row is locked for the duration of the
// transaction so concurrent uploads to the same post cannot hand out the
// same order twice.
func (r *postRepository) AddPictures(ctx context.Context, postID string, urls []string) ([]model.Picture, error) {
	if len(urls) == 0 {
		return []model.Picture{}, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var owner string
	err = tx.GetContext(ctx, &owner, `SELECT user_id FROM posts WHERE id = $1 FOR UPDATE`, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock post: %w", err)
	}

	var maxOrder int
	err = tx.GetContext(ctx, &maxOrder, `SELECT COALESCE(MAX(upload_order), 0) FROM pictures WHERE post_id = $1`, postID)
	if err != nil {
		return nil, fmt.Errorf("get max upload order: %w", err)
	}

	insertQuery := `
		INSERT INTO pictures (id, url, post_id, upload_order)
		VALUES ($1, $2, $3, $4)
		RETURNING url, upload_order
	`
	pictures := make([]model.Picture, 0, len(urls))
	for i, url := range urls {
		var pic model.Picture
		err = tx.GetContext(ctx, &pic, insertQuery, uuid.NewString(), url, postID, maxOrder+i+1)
		if err != nil {
			return nil, fmt.Errorf("insert picture %d: %w", i, err)
		}
		pictures = append(pictures, pic)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return pictures, nil
}

// postRowRecord scans one row of the posts×pictures×comments×likes join.
// Nullable columns come from LEFT JOIN branches that produced no match.
type postRowRecord struct {
	PostID     string         `db:"post_id"`
	UserID     string         `db:"user_id"`
	Username   string         `db:"username"`
	UserAvatar string         `db:"user_avatar"`
	Message    sql.NullString `db:"message"`
	MediaURL   sql.NullString `db:"url_media_image"`
	Date       time.Time      `db:"date"`

	PictureURL   sql.NullString `db:"picture_url"`
	PictureOrder sql.NullInt64  `db:"picture_order"`

	CommentID      sql.NullString `db:"comment_id"`
	CommentUserID  sql.NullString `db:"comment_user_id"`
	CommentUser    sql.NullString `db:"comment_username"`
	CommentAvatar  sql.NullString `db:"comment_user_avatar"`
	CommentContent sql.NullString `db:"comment_content"`
	CommentDate    sql.NullTime   `db:"comment_date"`

	LikeUserID sql.NullString `db:"like_user_id"`
}

const postRowColumns = `
	posts.id AS post_id,
	posts.user_id,
	users.username,
	COALESCE(users.avatar, $2) AS user_avatar,
	posts.message,
	posts.url_media_image,
	posts.date,

	pictures.url AS picture_url,
	pictures.upload_order AS picture_order,

	comments.id AS comment_id,
	comments.user_id AS comment_user_id,
	comment_users.username AS comment_username,
	COALESCE(comment_users.avatar, $2) AS comment_user_avatar,
	comments.content AS comment_content,
	comments.created_at AS comment_date,

	likes.user_id AS like_user_id
`

const postRowJoins = `
	FROM posts
	LEFT JOIN pictures ON posts.id = pictures.post_id
	LEFT JOIN users ON posts.user_id = users.id
	LEFT JOIN comments ON posts.id = comments.post_id
	LEFT JOIN users AS comment_users ON comments.user_id = comment_users.id
	LEFT JOIN likes ON posts.id = likes.post_id
`

// FeedRows selects the flat join for posts authored by the viewer or by
// anyone the viewer follows. The ORDER BY fixes post placement (date desc)
// and is the ordering contract the assembler relies on.
func (r *postRepository) FeedRows(ctx context.Context, viewerID string) ([]model.PostRow, error) {
	query := `SELECT ` + postRowColumns + postRowJoins + `
		WHERE
			posts.user_id IN (
				SELECT followed_id
				FROM follows
				WHERE follower_id = $1
			)
			OR posts.user_id = $1
		ORDER BY posts.date DESC, pictures.upload_order ASC
	`
	return r.selectPostRows(ctx, query, viewerID)
}

// AuthorRows selects the same flat join scoped to a single author.
func (r *postRepository) AuthorRows(ctx context.Context, authorID string) ([]model.PostRow, error) {
	query := `SELECT ` + postRowColumns + postRowJoins + `
		WHERE posts.user_id = $1
		ORDER BY posts.date DESC, pictures.upload_order ASC
	`
	return r.selectPostRows(ctx, query, authorID)
}

func (r *postRepository) selectPostRows(ctx context.Context, query, userID string) ([]model.PostRow, error) {
	var records []postRowRecord
	err := r.db.SelectContext(ctx, &records, query, userID, r.defaultAvatar)
	if err != nil {
		return nil, fmt.Errorf("select post rows: %w", err)
	}

	rows := make([]model.PostRow, len(records))
	for i, rec := range records {
		rows[i] = rec.toRow()
	}
	return rows, nil
}

// toRow converts nullable scan columns into the explicit optional-field
// record the assembler pattern-matches on.
func (rec postRowRecord) toRow() model.PostRow {
	row := model.PostRow{
		PostID:     rec.PostID,
		UserID:     rec.UserID,
		Username:   rec.Username,
		UserAvatar: rec.UserAvatar,
		Date:       rec.Date,
	}
	if rec.Message.Valid {
		row.Message = &rec.Message.String
	}
	if rec.MediaURL.Valid {
		row.MediaURL = &rec.MediaURL.String
	}
	if rec.PictureURL.Valid {
		row.Picture = &model.Picture{
			URL:   rec.PictureURL.String,
			Order: int(rec.PictureOrder.Int64),
		}
	}
	if rec.CommentID.Valid {
		row.Comment = &model.Comment{
			ID:         rec.CommentID.String,
			UserID:     rec.CommentUserID.String,
			Username:   rec.CommentUser.String,
			UserAvatar: rec.CommentAvatar.String,
			Content:    rec.CommentContent.String,
			Date:       rec.CommentDate.Time,
		}
	}
	if rec.LikeUserID.Valid {
		row.LikeUserID = &rec.LikeUserID.String
	}
	return row
}

// InsertLike adds the like edge if absent. Returns whether a row was
// actually inserted; the unique constraint makes the check-then-act race
// collapse into a single conditional write.
func (r *postRepository) InsertLike(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error) {
	query := `
		INSERT INTO likes (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`
	result, err := tx.ExecContext(ctx, query, userID, postID)
	if err != nil {
		// 23503: foreign key violation, the post does not exist
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return false, model.ErrPostNotFound
		}
		return false, fmt.Errorf("insert like: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows > 0, nil
}

// DeleteLike removes the like edge. Returns whether a row was deleted.
func (r *postRepository) DeleteLike(ctx context.Context, tx *sqlx.Tx, userID, postID string) (bool, error) {
	result, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows > 0, nil
}

// IncrementLikes moves the denormalized counter in the same transaction as
// the edge write, keeping it equal to the like-set cardinality.
func (r *postRepository) IncrementLikes(ctx context.Context, tx *sqlx.Tx, postID string, delta int) error {
	result, err := tx.ExecContext(ctx, `UPDATE posts SET likes = likes + $1 WHERE id = $2`, delta, postID)
	if err != nil {
		return fmt.Errorf("update like count: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// InsertComment appends a comment and returns it enriched with the author's
// identity.
func (r *postRepository) InsertComment(ctx context.Context, postID, userID, content string) (*model.Comment, error) {
	insertQuery := `
		INSERT INTO comments (id, post_id, user_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, content, created_at AS date
	`
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, insertQuery, uuid.NewString(), postID, userID, content)
	if err != nil {
		// 23503: foreign key violation, the post does not exist
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	authorQuery := `
		SELECT username, COALESCE(avatar, $2) AS user_avatar
		FROM users
		WHERE id = $1
	`
	var author struct {
		Username   string `db:"username"`
		UserAvatar string `db:"user_avatar"`
	}
	err = r.db.GetContext(ctx, &author, authorQuery, userID, r.defaultAvatar)
	if err != nil {
		return nil, fmt.Errorf("get comment author: %w", err)
	}

	comment.Username = author.Username
	comment.UserAvatar = author.UserAvatar
	return &comment, nil
}
