package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"picshare/internal/httputil"
	"picshare/internal/model"
	"picshare/internal/service"
)

// FeedHandler groups the read-side endpoints: the home feed, a single
// author's feed, and the stories feed.
type FeedHandler struct {
	feedService *service.FeedService
}

// NewFeedHandler wires dependencies for feed endpoints.
func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// GetFeed returns the assembled home feed for the viewer named in the
// path: their own posts plus posts by everyone they follow. An empty
// feed is a 404, matching the client contract.
// GET /posts/feed/{userId}
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	viewerID := chi.URLParam(r, "userId")
	if viewerID == "" {
		httputil.WriteBadRequest(w, "User ID is required")
		return
	}

	posts, err := h.feedService.ReadFeed(r.Context(), viewerID)
	if err != nil {
		if errors.Is(err, model.ErrNoPostsFound) {
			httputil.WriteNotFound(w, "No posts found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// GetAuthorFeed returns one author's assembled posts. Unlike the home
// feed, no posts means an empty array, not an error.
// GET /posts/user/{userId}
func (h *FeedHandler) GetAuthorFeed(w http.ResponseWriter, r *http.Request) {
	authorID := chi.URLParam(r, "userId")
	if authorID == "" {
		httputil.WriteBadRequest(w, "User ID is required")
		return
	}

	posts, err := h.feedService.ReadAuthorFeed(r.Context(), authorID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to get user posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// GetStoriesFeed returns unexpired stories by the viewer and everyone
// they follow, grouped per author.
// GET /stories/feed/{userId}
func (h *FeedHandler) GetStoriesFeed(w http.ResponseWriter, r *http.Request) {
	viewerID := chi.URLParam(r, "userId")
	if viewerID == "" {
		httputil.WriteBadRequest(w, "User ID is required")
		return
	}

	stories, err := h.feedService.ReadStoriesFeed(r.Context(), viewerID)
	if err != nil {
		if errors.Is(err, model.ErrNoStoriesFound) {
			httputil.WriteNotFound(w, "No stories found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get stories")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, stories)
}
