package model

import "time"

// Notification is an append-only record addressed to a recipient.
// Type is a free-form string chosen by the sender ("follow", "like", ...).
type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"` // recipient
	SenderID  string    `db:"sender_id" json:"sender_id"`
	Type      string    `db:"type" json:"type"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Sender identity joined for display
	Username   string `db:"username" json:"username"`
	UserAvatar string `db:"user_avatar" json:"userAvatar"`
}

// CreateNotificationRequest is the request body for creating a notification.
type CreateNotificationRequest struct {
	UserID   string `json:"userId"`
	SenderID string `json:"senderId"`
	Type     string `json:"type"`
	Content  string `json:"content"`
}
