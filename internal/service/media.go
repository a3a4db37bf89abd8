package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"picshare/internal/config"
	"picshare/internal/model"
)

// MediaService stores uploaded files in an S3-compatible bucket and hands
// back durable public URLs.
type MediaService struct {
	s3Client  *s3.Client
	bucket    string
	publicURL string
}

func NewMediaService(ctx context.Context, cfg *config.Config) (*MediaService, error) {
	if cfg.S3Endpoint == "" || cfg.S3AccessKeyID == "" || cfg.S3SecretAccessKey == "" || cfg.S3BucketName == "" || cfg.S3PublicURL == "" {
		return nil, fmt.Errorf("missing object storage configuration")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &MediaService{
		s3Client:  s3Client,
		bucket:    cfg.S3BucketName,
		publicURL: strings.TrimSuffix(cfg.S3PublicURL, "/"),
	}, nil
}

// UploadAvatar enforces size/type, normalizes to 200x200 JPEG, and uploads.
func (s *MediaService) UploadAvatar(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
	data, _, err := readAndValidateUpload(file, header, model.IsAllowedImageType)
	if err != nil {
		return nil, err
	}

	jpegBytes, err := resizeToJPEG(data, model.AvatarWidth, model.AvatarHeight, 85)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s.jpg", model.AvatarFolder, uuid.NewString())
	if err := s.putObject(ctx, key, jpegBytes, model.ContentTypeJPEG); err != nil {
		return nil, err
	}

	return &model.UploadResult{URL: s.publicURL + "/" + key, Key: key}, nil
}

// UploadPicture validates and stores a post picture as uploaded.
func (s *MediaService) UploadPicture(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
	return s.uploadOriginal(ctx, file, header, model.PictureFolder, model.IsAllowedImageType)
}

// UploadStoryMedia validates and stores a story's media attachment, which
// may be an image or a short video.
func (s *MediaService) UploadStoryMedia(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
	return s.uploadOriginal(ctx, file, header, model.StoryFolder, model.IsAllowedStoryMediaType)
}

func (s *MediaService) uploadOriginal(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string, allowType func(string) bool) (*model.UploadResult, error) {
	data, contentType, err := readAndValidateUpload(file, header, allowType)
	if err != nil {
		return nil, err
	}

	ext := path.Ext(header.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)
	if err := s.putObject(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	return &model.UploadResult{URL: s.publicURL + "/" + key, Key: key}, nil
}

func (s *MediaService) putObject(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(model.MediaCacheControl),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// readAndValidateUpload loads the upload into memory with size and type checks.
func readAndValidateUpload(file multipart.File, header *multipart.FileHeader, allowType func(string) bool) ([]byte, string, error) {
	if header.Size > model.MaxUploadSizeBytes {
		return nil, "", model.ErrFileTooLarge
	}

	limited := io.LimitReader(file, model.MaxUploadSizeBytes+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > model.MaxUploadSizeBytes {
		return nil, "", model.ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" && len(data) > 0 {
		contentType = http.DetectContentType(data[:min(len(data), 512)])
	}
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if !allowType(contentType) {
		return nil, "", model.ErrInvalidImageType
	}

	return data, contentType, nil
}

// resizeToJPEG centers/crops to target size and encodes as JPEG.
func resizeToJPEG(data []byte, width, height, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	resized := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
