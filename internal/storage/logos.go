// AngelaMos | 2026
// logos.go

package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/medisupply/auth-service/internal/config"
)

// LogoStore keeps institution logos in an S3-compatible bucket and hands
// back the public URL of each uploaded object.
type LogoStore struct {
	mc     *minio.Client
	bucket string
	public string
}

func NewLogoStore(cfg config.StorageConfig) (*LogoStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("storage access_key and secret_key are required")
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return &LogoStore{
		mc:     mc,
		bucket: cfg.Bucket,
		public: fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket),
	}, nil
}

// EnsureBucket creates the logo bucket when it does not exist yet.
// Called once at startup.
func (s *LogoStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.mc.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

// Upload stores a logo under the given object name and returns its
// public URL.
func (s *LogoStore) Upload(
	ctx context.Context,
	filename string,
	content io.Reader,
	size int64,
	contentType string,
) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.mc.PutObject(ctx, s.bucket, filename, content, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload logo %s: %w", filename, err)
	}

	return s.public + "/" + filename, nil
}

// Delete removes a stored logo. Missing objects are not an error.
func (s *LogoStore) Delete(ctx context.Context, filename string) error {
	err := s.mc.RemoveObject(ctx, s.bucket, filename, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("delete logo %s: %w", filename, err)
	}
	return nil
}
