package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"picshare/internal/config"
	"picshare/internal/model"
)

// AuthService issues and verifies the signed, time-limited session token.
type AuthService struct {
	config *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{config: cfg}
}

// SessionClaims is the identity carried by the session token.
type SessionClaims struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	UserAvatar string `json:"userAvatar"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token carrying the user's public identity.
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	avatar := s.config.DefaultAvatarURL
	if user.Avatar != nil {
		avatar = *user.Avatar
	}

	claims := SessionClaims{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		UserAvatar: avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(s.config.TokenMaxAge) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a session token.
func (s *AuthService) VerifyToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
