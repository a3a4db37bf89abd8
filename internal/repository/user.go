package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"picshare/internal/model"
)

type userRepository struct {
	db            *sqlx.DB
	defaultAvatar string
}

func NewUserRepository(db *sqlx.DB, defaultAvatar string) UserRepository {
	return &userRepository{db: db, defaultAvatar: defaultAvatar}
}

// Create inserts a new user. Unique-constraint violations on username or
// email map to the corresponding domain error.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	user.ID = uuid.NewString()
	query := `
		INSERT INTO users (id, username, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.GetContext(ctx, &user.CreatedAt, query, user.ID, user.Username, user.Email, user.Password)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			switch pqErr.Constraint {
			case "users_email_key":
				return model.ErrEmailInUse
			default:
				return model.ErrUsernameExists
			}
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, email, password, avatar, created_at
		FROM users
		WHERE username = $1
	`
	var user model.User
	err := r.db.GetContext(ctx, &user, query, username)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.Avatar == nil {
		user.Avatar = &r.defaultAvatar
	}
	return &user, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
	if err != nil {
		return false, fmt.Errorf("check username exists: %w", err)
	}
	return exists, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// GetAll returns every user's public summary.
func (r *userRepository) GetAll(ctx context.Context) ([]model.UserSummary, error) {
	query := `
		SELECT id, username, COALESCE(avatar, $1) AS avatar
		FROM users
		ORDER BY username ASC
	`
	var users []model.UserSummary
	err := r.db.SelectContext(ctx, &users, query, r.defaultAvatar)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return users, nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, userID, avatarURL string) (string, error) {
	query := `UPDATE users SET avatar = $1 WHERE id = $2 RETURNING avatar`
	var avatar string
	err := r.db.GetContext(ctx, &avatar, query, avatarURL, userID)
	if err == sql.ErrNoRows {
		return "", model.ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("update avatar: %w", err)
	}
	return avatar, nil
}
