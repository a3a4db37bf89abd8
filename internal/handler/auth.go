package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"picshare/internal/config"
	"picshare/internal/httputil"
	"picshare/internal/model"
	"picshare/internal/service"
)

// AuthHandler groups session-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
	config      *config.Config
}

// NewAuthHandler wires dependencies for authentication endpoints.
func NewAuthHandler(userService *service.UserService, authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
		config:      cfg,
	}
}

// Register handles user sign-up
// POST /users
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, "Username already exists")
		case errors.Is(err, model.ErrEmailInUse):
			httputil.WriteConflict(w, "Email already in use")
		case errors.Is(err, model.ErrInvalidUsername),
			errors.Is(err, model.ErrInvalidPasswordFormat),
			errors.Is(err, model.ErrInvalidEmail):
			httputil.WriteBadRequest(w, err.Error())
		default:
			httputil.WriteInternalError(w, "Failed to register user")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, user)
}

// Login authenticates a user and issues a session token. The token is
// returned in the body and also set as an http-only cookie so browser
// clients can rely on GET /users/verify.
// POST /users/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.Username == "" {
		httputil.WriteBadRequest(w, "Username is required")
		return
	}
	if req.Password == "" {
		httputil.WriteBadRequest(w, "Password is required")
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrInvalidPassword):
			httputil.WriteUnauthorized(w, "Invalid password")
		default:
			httputil.WriteInternalError(w, "Failed to login")
		}
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		MaxAge:   h.config.TokenMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Verify validates the current session token and returns its claims.
// GET /users/verify
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	tokenString := extractSessionToken(r)
	if tokenString == "" {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	claims, err := h.authService.VerifyToken(tokenString)
	if err != nil {
		httputil.WriteUnauthorized(w, "Invalid or expired token")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, claims)
}

// Logout clears the session cookie. Tokens are stateless so there is
// nothing to revoke server-side.
// POST /users/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func extractSessionToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	cookie, err := r.Cookie("access_token")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}
