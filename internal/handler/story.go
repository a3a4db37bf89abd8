package handler

import (
	"errors"
	"net/http"

	"picshare/internal/httputil"
	"picshare/internal/model"
	"picshare/internal/service"
	"picshare/internal/transport/http/middleware"
)

// StoryHandler groups story creation endpoints. Reads go through the
// feed handler.
type StoryHandler struct {
	storyService *service.StoryService
	mediaService *service.MediaService
}

// NewStoryHandler wires dependencies for story endpoints.
func NewStoryHandler(storyService *service.StoryService, mediaService *service.MediaService) *StoryHandler {
	return &StoryHandler{
		storyService: storyService,
		mediaService: mediaService,
	}
}

// Create handles multipart story creation. The type arrives as a form
// value and the media file under the "media" field. Stories expire 24
// hours after creation.
// POST /stories
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	maxFormSize := int64(model.MaxUploadSizeBytes) + 1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	storyType := r.FormValue("type")

	var mediaURL *string
	file, header, err := r.FormFile("media")
	if err == nil {
		defer file.Close()
		upload, uploadErr := h.mediaService.UploadStoryMedia(r.Context(), file, header)
		if uploadErr != nil {
			switch {
			case errors.Is(uploadErr, model.ErrFileTooLarge):
				httputil.WriteBadRequest(w, "Media exceeds 10MB limit")
			case errors.Is(uploadErr, model.ErrInvalidImageType):
				httputil.WriteBadRequest(w, "Unsupported media type")
			default:
				httputil.WriteInternalError(w, "Failed to upload media")
			}
			return
		}
		mediaURL = &upload.URL
	} else if err != http.ErrMissingFile {
		httputil.WriteBadRequest(w, "Invalid media upload")
		return
	}

	story, err := h.storyService.Create(r.Context(), userID, storyType, mediaURL)
	if err != nil {
		if errors.Is(err, model.ErrInvalidStoryType) {
			httputil.WriteBadRequest(w, "Invalid story type")
			return
		}
		httputil.WriteInternalError(w, "Failed to create story")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, story)
}
