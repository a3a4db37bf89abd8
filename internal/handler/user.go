package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"picshare/internal/httputil"
	"picshare/internal/model"
	"picshare/internal/service"
	"picshare/internal/transport/http/middleware"
)

// UserHandler groups user listing and profile endpoints.
type UserHandler struct {
	userService  *service.UserService
	mediaService *service.MediaService
}

// NewUserHandler wires dependencies for user endpoints.
func NewUserHandler(userService *service.UserService, mediaService *service.MediaService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		mediaService: mediaService,
	}
}

// GetAll lists every registered user with an isFollowing flag relative
// to the viewer named in the path.
// GET /users/all/{userId}
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	viewerID := chi.URLParam(r, "userId")
	if viewerID == "" {
		httputil.WriteBadRequest(w, "User ID is required")
		return
	}

	users, err := h.userService.GetAll(r.Context(), viewerID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list users")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}

// UpdateAvatar replaces the authenticated user's avatar with an
// uploaded image, resized server-side before storage.
// PATCH /users/avatar
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	maxFormSize := int64(model.MaxUploadSizeBytes) + 1024*1024 // allow form overhead
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		httputil.WriteBadRequest(w, "Avatar file is required")
		return
	}
	defer file.Close()

	upload, err := h.mediaService.UploadAvatar(r.Context(), file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "Avatar exceeds 10MB limit")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported image type. Allowed: jpeg, png, gif, webp")
		default:
			httputil.WriteInternalError(w, "Failed to upload avatar")
		}
		return
	}

	avatarURL, err := h.userService.UpdateAvatar(r.Context(), userID, upload.URL)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to update avatar")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"avatar": avatarURL})
}
