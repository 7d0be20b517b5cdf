package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"goldlinks/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxImageSize caps logo and product image uploads
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectStorage stores uploaded images
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// StorageService provides S3-compatible file storage
type StorageService struct {
	s3Client *s3.S3
	bucket   string
	baseURL  string
}

// NewStorageService creates a new storage service
func NewStorageService(cfg config.S3Config) (*StorageService, error) {
	if !cfg.Enabled() {
		return nil, ErrStorageDisabled
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		),
		DisableSSL: aws.Bool(!cfg.UseSSL),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	baseURL := strings.TrimRight(cfg.PublicURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		bucket:   cfg.Bucket,
		baseURL:  baseURL,
	}, nil
}

// Put uploads an object and returns its public URL
func (s *StorageService) Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("%s/%s", s.baseURL, key)
	log.Info().Str("key", key).Str("url", publicURL).Msg("File uploaded to S3")
	return publicURL, nil
}

// Delete removes an object from the bucket
func (s *StorageService) Delete(ctx context.Context, key string) error {
	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

// uploadImage validates an uploaded image and stores it under prefix
func uploadImage(ctx context.Context, storage ObjectStorage, fileHeader *multipart.FileHeader, prefix string) (url, key string, err error) {
	if storage == nil {
		return "", "", ErrStorageDisabled
	}
	if fileHeader.Size > MaxImageSize {
		return "", "", invalid("image larger than %d bytes", MaxImageSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", "", fmt.Errorf("failed to read file for content type detection: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	contentType := http.DetectContentType(buffer[:n])
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", "", invalid("unsupported image type %s", contentType)
	}

	key = path.Join(prefix, uuid.New().String()+ext)
	url, err = storage.Put(ctx, key, file, contentType)
	if err != nil {
		return "", "", err
	}
	return url, key, nil
}

// removeImage deletes a previous image, logging instead of failing
func removeImage(ctx context.Context, storage ObjectStorage, key string) {
	if storage == nil || key == "" {
		return
	}
	if err := storage.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to delete previous image")
	}
}
