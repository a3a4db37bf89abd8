package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"picshare/internal/httputil"
	"picshare/internal/model"
	"picshare/internal/service"
	"picshare/internal/transport/http/middleware"
)

// PostHandler groups the write-side post endpoints: creation, the like
// toggle, and comments.
type PostHandler struct {
	postService  *service.PostService
	mediaService *service.MediaService
}

// NewPostHandler wires dependencies for post endpoints.
func NewPostHandler(postService *service.PostService, mediaService *service.MediaService) *PostHandler {
	return &PostHandler{
		postService:  postService,
		mediaService: mediaService,
	}
}

// Create handles multipart post creation. The message and optional
// legacy image URL arrive as form values; any number of picture files
// arrive under the "pictures" field and are uploaded before the post
// row is written.
// POST /posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	maxFormSize := int64(model.MaxUploadSizeBytes)*4 + 1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	var req model.CreatePostRequest
	if message := r.FormValue("message"); message != "" {
		req.Message = &message
	}
	if mediaURL := r.FormValue("urlMediaImage"); mediaURL != "" {
		req.MediaURL = &mediaURL
	}

	var pictureURLs []string
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["pictures"] {
			file, err := header.Open()
			if err != nil {
				httputil.WriteBadRequest(w, "Invalid picture upload")
				return
			}
			upload, err := h.mediaService.UploadPicture(r.Context(), file, header)
			file.Close()
			if err != nil {
				switch {
				case errors.Is(err, model.ErrFileTooLarge):
					httputil.WriteBadRequest(w, "Picture exceeds 10MB limit")
				case errors.Is(err, model.ErrInvalidImageType):
					httputil.WriteBadRequest(w, "Unsupported image type. Allowed: jpeg, png, gif, webp")
				default:
					httputil.WriteInternalError(w, "Failed to upload picture")
				}
				return
			}
			pictureURLs = append(pictureURLs, upload.URL)
		}
	}

	post, err := h.postService.Create(r.Context(), userID, req, pictureURLs)
	if err != nil {
		if errors.Is(err, model.ErrMessageTooLong) {
			httputil.WriteBadRequest(w, "Message is too long")
			return
		}
		httputil.WriteInternalError(w, "Failed to create post")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, post)
}

// ToggleLike flips the authenticated user's like on a post and reports
// which way it went.
// PATCH /posts/{id}/likes
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	postID := chi.URLParam(r, "id")
	if postID == "" {
		httputil.WriteBadRequest(w, "Post ID is required")
		return
	}

	result, err := h.postService.ToggleLike(r.Context(), userID, postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to toggle like")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"action": string(result)})
}

// AddComment appends a comment to a post on behalf of the
// authenticated user.
// POST /posts/{postId}/comments
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	postID := chi.URLParam(r, "postId")
	if postID == "" {
		httputil.WriteBadRequest(w, "Post ID is required")
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.postService.AddComment(r.Context(), postID, userID, strings.TrimSpace(body.Content))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrContentRequired):
			httputil.WriteBadRequest(w, "Comment content is required")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		default:
			httputil.WriteInternalError(w, "Failed to add comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}
