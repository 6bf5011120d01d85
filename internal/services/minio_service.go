package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

const (
	coverPrefix = "covers/"
	coverExpiry = 15 * time.Minute
)

var allowedCoverTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// MinIOService stores book cover images in an S3-compatible bucket.
type MinIOService struct {
	client    *minio.Client
	bucket    string
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
	}).Info("Cover storage client initialized")

	service := &MinIOService{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
		logger:    logger,
	}

	if err := service.ensureBucket(context.Background(), cfg.Region); err != nil {
		logger.WithError(err).Warn("Failed to configure cover bucket, but continuing...")
	}

	return service, nil
}

func (s *MinIOService) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	}

	// Covers are public; everything else in the bucket stays private.
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
	}`, s.bucket, coverPrefix)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}
	return nil
}

// GeneratePresignedURL returns a PUT URL for a new cover object and the public
// URL the object will be served from once uploaded.
func (s *MinIOService) GeneratePresignedURL(ctx context.Context, filename, contentType string) (string, string, error) {
	if !allowedCoverTypes[contentType] {
		return "", "", apperr.Validation(fmt.Sprintf("unsupported cover content type %q", contentType), apperr.FieldError{
			Field:   "contentType",
			Message: "contentType must be one of image/jpeg, image/png, image/webp",
		})
	}

	objectPath := coverObjectPath(filename)

	presignedURL, err := s.client.PresignedPutObject(ctx, s.bucket, objectPath, coverExpiry)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate presigned URL")
		return "", "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	publicURL := s.objectURL(objectPath)

	s.logger.WithFields(logrus.Fields{
		"filename":   filename,
		"objectPath": objectPath,
		"expiry":     coverExpiry,
	}).Info("Generated presigned cover URL")

	return presignedURL.String(), publicURL, nil
}

// IsManagedURL reports whether url points into the cover bucket.
func (s *MinIOService) IsManagedURL(url string) bool {
	return strings.HasPrefix(url, "http") && strings.Contains(url, "/"+s.bucket+"/"+coverPrefix)
}

func (s *MinIOService) DeleteFile(objectPath string) error {
	objectPath = s.objectKey(objectPath)

	err := s.client.RemoveObject(context.Background(), s.bucket, objectPath, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.WithError(err).WithField("objectPath", objectPath).Error("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.WithField("objectPath", objectPath).Info("Cover deleted from storage")
	return nil
}

// objectKey reduces a public or presigned URL to the object key inside the bucket.
// Anything that is not a URL is taken to be a key already.
func (s *MinIOService) objectKey(objectPath string) string {
	if idx := strings.Index(objectPath, "?"); idx != -1 {
		objectPath = objectPath[:idx]
	}
	if !strings.HasPrefix(objectPath, "http") {
		return objectPath
	}
	if idx := strings.Index(objectPath, "/"+s.bucket+"/"); idx != -1 {
		objectPath = objectPath[idx+len(s.bucket)+2:]
	}
	return objectPath
}

func (s *MinIOService) objectURL(objectPath string) string {
	publicBase := strings.TrimPrefix(s.publicURL, "https://")
	publicBase = strings.TrimPrefix(publicBase, "http://")

	if idx := strings.Index(publicBase, "/"); idx != -1 {
		publicBase = publicBase[:idx]
	}

	protocol := "http://"
	if strings.HasPrefix(s.publicURL, "https://") {
		protocol = "https://"
	}

	return fmt.Sprintf("%s%s/%s/%s", protocol, publicBase, s.bucket, objectPath)
}

func coverObjectPath(filename string) string {
	base := filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(base))
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s%s_%s%s", coverPrefix, name, uuid.New().String()[:8], ext)
}
