package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"picshare/internal/model"
)

type notificationRepository struct {
	db            *sqlx.DB
	defaultAvatar string
}

func NewNotificationRepository(db *sqlx.DB, defaultAvatar string) NotificationRepository {
	return &notificationRepository{db: db, defaultAvatar: defaultAvatar}
}

// Create appends a notification. Notifications are read-only afterward.
func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	query := `
		INSERT INTO notifications (id, user_id, sender_id, type, content, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, user_id, sender_id, type, content, created_at
	`
	var created model.Notification
	err := r.db.GetContext(ctx, &created, query, uuid.NewString(), n.UserID, n.SenderID, n.Type, n.Content)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return &created, nil
}

// GetAllForUser returns the recipient's notifications newest-first with the
// sender's identity joined in.
func (r *notificationRepository) GetAllForUser(ctx context.Context, userID string) ([]model.Notification, error) {
	query := `
		SELECT
			n.id,
			n.sender_id,
			n.type,
			n.content,
			n.created_at,
			u.username,
			COALESCE(u.avatar, $2) AS user_avatar
		FROM notifications n
		JOIN users u ON n.sender_id = u.id
		WHERE n.user_id = $1
		ORDER BY n.created_at DESC
	`
	var notifications []model.Notification
	err := r.db.SelectContext(ctx, &notifications, query, userID, r.defaultAvatar)
	if err != nil {
		return nil, fmt.Errorf("select notifications: %w", err)
	}
	return notifications, nil
}
