package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/zatekoja/Facilityonboardingautomation/backend/pkg/config"
	"github.com/zatekoja/Facilityonboardingautomation/backend/pkg/retry"
)

// uploadRetryConfig bounds transient upload failures; generated files are
// small so the short default backoff is enough.
func uploadRetryConfig() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = 3
	cfg.MaxTotalTimeout = 30 * time.Second
	return cfg
}

// MinioStore implements the object store provider backed by an S3
// compatible endpoint.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore creates a new object store adapter.
func NewMinioStore(cfg *config.StorageConfig) (*MinioStore, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object store client: %w", err)
	}

	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Upload stores a local file under the given object key.
func (s *MinioStore) Upload(ctx context.Context, localPath, objectKey string) error {
	err := retry.Do(ctx, uploadRetryConfig(), func() error {
		_, err := s.client.FPutObject(ctx, s.bucket, objectKey, localPath, minio.PutObjectOptions{
			ContentType: "text/csv",
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}
	return nil
}

// Download fetches an object into a local file.
func (s *MinioStore) Download(ctx context.Context, objectKey, localPath string) error {
	if err := s.client.FGetObject(ctx, s.bucket, objectKey, localPath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("failed to download %s: %w", objectKey, err)
	}
	return nil
}
