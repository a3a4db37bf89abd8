package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"picshare/internal/httputil"
	"picshare/internal/service"
	"picshare/internal/transport/http/middleware"
)

// FollowHandler groups follow-graph endpoints.
type FollowHandler struct {
	followService *service.FollowService
}

// NewFollowHandler wires dependencies for follow endpoints.
func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow makes the authenticated user follow the user named in the path.
// Repeats are absorbed without error.
// POST /users/{userId}/follow
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	followerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	followedID := chi.URLParam(r, "userId")
	if followedID == "" {
		httputil.WriteBadRequest(w, "User ID is required")
		return
	}

	if err := h.followService.Follow(r.Context(), followerID, followedID); err != nil {
		httputil.WriteInternalError(w, "Failed to follow user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "followed"})
}

// Unfollow removes the edge if present; removing a missing edge is a no-op.
// DELETE /users/{userId}/follow
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	followerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	followedID := chi.URLParam(r, "userId")
	if followedID == "" {
		httputil.WriteBadRequest(w, "User ID is required")
		return
	}

	if err := h.followService.Unfollow(r.Context(), followerID, followedID); err != nil {
		httputil.WriteInternalError(w, "Failed to unfollow user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "unfollowed"})
}

// GetFollowers lists users following the user named in the path.
// GET /users/{userId}/followers
func (h *FollowHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		httputil.WriteBadRequest(w, "User ID is required")
		return
	}

	followers, err := h.followService.Followers(r.Context(), userID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to get followers")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, followers)
}

// GetFollowing lists users the user named in the path follows.
// GET /users/{userId}/following
func (h *FollowHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		httputil.WriteBadRequest(w, "User ID is required")
		return
	}

	following, err := h.followService.Followed(r.Context(), userID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to get following")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, following)
}
