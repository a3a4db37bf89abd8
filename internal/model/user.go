package model

import (
	"errors"
	"time"
)

// User represents a user account in the system
type User struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"` // bcrypt hash, "-" hides it from JSON output
	Avatar    *string   `db:"avatar" json:"avatar"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserSummary is the public identity shape returned by follow lookups
// and user listings. Avatar is already coalesced to the default
// placeholder by the repository query.
type UserSummary struct {
	ID          string `db:"id" json:"id"`
	Username    string `db:"username" json:"username"`
	Avatar      string `db:"avatar" json:"avatar"`
	IsFollowing bool   `json:"isFollowing,omitempty"`
}

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Username/password/email constraints enforced at registration
const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MinPasswordLength = 8
	MaxEmailLength    = 100
)

var (
	// ErrUsernameExists is returned when the username is already taken
	ErrUsernameExists = errors.New("username already exists")

	// ErrEmailInUse is returned when the email is already registered
	ErrEmailInUse = errors.New("email already in use")

	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidPassword is returned when login credentials are incorrect
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidUsername is returned when a username fails registration limits
	ErrInvalidUsername = errors.New("username must be between 3 and 20 characters")

	// ErrInvalidPasswordFormat is returned when a password is too short
	ErrInvalidPasswordFormat = errors.New("password must be at least 8 characters")

	// ErrInvalidEmail is returned when an email is missing or malformed
	ErrInvalidEmail = errors.New("invalid email address")
)
