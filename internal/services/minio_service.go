package services

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"pantry-backend/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

const (
	imagePrefix   = "food-items/"
	presignExpiry = 15 * time.Minute
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageStore removes uploaded food item images.
type ImageStore interface {
	// ObjectKey returns the object key for a URL served from this store.
	ObjectKey(rawURL string) (string, bool)
	DeleteFile(ctx context.Context, objectKey string) error
}

// PresignedUpload is returned to the client, which PUTs the file to UploadURL
// and then stores PublicURL as the item's image_url.
type PresignedUpload struct {
	UploadURL string    `json:"presigned_url"`
	PublicURL string    `json:"public_url"`
	ObjectKey string    `json:"object_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

type MinIOService struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string
	logger    *logrus.Logger
}

func NewMinIOService(cfg *config.MinIOConfig, logger *logrus.Logger) (*MinIOService, error) {
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   cfg.BucketName,
		"useSSL":   cfg.UseSSL,
	}).Info("MinIO client initialized successfully")

	service := &MinIOService{
		client:    minioClient,
		bucket:    cfg.BucketName,
		region:    cfg.Region,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		logger:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := service.ensureBucket(ctx); err != nil {
		logger.WithError(err).Warn("Failed to configure bucket, but continuing...")
	}

	return service, nil
}

func (s *MinIOService) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	}

	// Item images are shown on public pantry screens.
	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/%s*"]
			}
		]
	}`, s.bucket, imagePrefix)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}
	return nil
}

// GeneratePresignedURL reserves a unique object key for an item image and
// returns a short-lived upload URL for it.
func (s *MinIOService) GeneratePresignedURL(ctx context.Context, filename, contentType string) (*PresignedUpload, error) {
	objectKey, err := imageObjectKey(filename, contentType)
	if err != nil {
		return nil, err
	}

	presignedURL, err := s.client.PresignedPutObject(ctx, s.bucket, objectKey, presignExpiry)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate presigned URL")
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"filename":   filename,
		"objectPath": objectKey,
		"expiry":     presignExpiry,
	}).Info("Generated presigned URL")

	return &PresignedUpload{
		UploadURL: presignedURL.String(),
		PublicURL: s.publicURL + "/" + objectKey,
		ObjectKey: objectKey,
		ExpiresAt: time.Now().UTC().Add(presignExpiry),
	}, nil
}

func (s *MinIOService) ObjectKey(rawURL string) (string, bool) {
	return objectKeyFromURL(s.publicURL, rawURL)
}

func (s *MinIOService) DeleteFile(ctx context.Context, objectKey string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.WithError(err).WithField("objectPath", objectKey).Error("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.WithField("objectPath", objectKey).Info("File deleted successfully from MinIO")
	return nil
}

func imageObjectKey(filename, contentType string) (string, error) {
	ext, ok := allowedImageTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", fmt.Errorf("%w: unsupported image type %q", ErrInvalidInput, contentType)
	}

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, base)
	base = strings.Trim(base, "-")
	if base == "" || base == "." {
		base = "image"
	}

	return fmt.Sprintf("%s%s_%s%s", imagePrefix, base, uuid.New().String()[:8], ext), nil
}

// objectKeyFromURL maps a public image URL back to its object key. URLs from
// other hosts, or outside the image prefix, are not ours to delete.
func objectKeyFromURL(publicBase, rawURL string) (string, bool) {
	if rawURL == "" || publicBase == "" {
		return "", false
	}
	base, err := url.Parse(publicBase)
	if err != nil {
		return "", false
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host != base.Host {
		return "", false
	}

	basePath := strings.TrimSuffix(base.Path, "/") + "/"
	if !strings.HasPrefix(u.Path, basePath) {
		return "", false
	}
	key := path.Clean(strings.TrimPrefix(u.Path, basePath))
	if !strings.HasPrefix(key, imagePrefix) {
		return "", false
	}
	return key, true
}
