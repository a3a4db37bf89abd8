package model

import "errors"

const (
	MaxUploadSizeBytes = 10 * 1024 * 1024 // 10MB per file

	AvatarWidth  = 200
	AvatarHeight = 200

	AvatarFolder  = "avatars"
	PictureFolder = "posts"
	StoryFolder   = "stories"

	MediaCacheControl = "public, max-age=31536000" // 1 year
)

// Supported image content types for upload validation
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"
)

// Story attachments may also be short videos
const (
	ContentTypeMP4  = "video/mp4"
	ContentTypeWebM = "video/webm"
	ContentTypeMOV  = "video/quicktime"
)

var allowedImageTypes = map[string]struct{}{
	ContentTypeJPEG: {},
	ContentTypePNG:  {},
	ContentTypeGIF:  {},
	ContentTypeWebP: {},
}

var allowedVideoTypes = map[string]struct{}{
	ContentTypeMP4:  {},
	ContentTypeWebM: {},
	ContentTypeMOV:  {},
}

// Domain errors for media operations
var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidImageType = errors.New("invalid image type")
)

// UploadResult represents the uploaded object location.
// URL is the public-facing URL, Key the object key inside the bucket.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// IsAllowedImageType reports if the provided content type is supported
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

// IsAllowedStoryMediaType accepts images and short videos.
func IsAllowedStoryMediaType(contentType string) bool {
	if IsAllowedImageType(contentType) {
		return true
	}
	_, ok := allowedVideoTypes[contentType]
	return ok
}
