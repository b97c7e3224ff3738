package assetstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"adoptnest/internal/config"
	"adoptnest/internal/domain"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var ErrAssetNotFound = errors.New("asset not found")

// Store uploads and releases binary assets held by pets, categories and
// banners.
type Store interface {
	Upload(ctx context.Context, localPath string, profile Profile) (domain.Asset, error)
	Delete(ctx context.Context, remoteID string) error
}

// MinioStore keeps assets in an S3-compatible bucket.
type MinioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	timeout       time.Duration
	logger        *zap.Logger
}

// NewMinioStore creates a store client from configuration. It does not
// touch the network; call EnsureBucket on startup.
func NewMinioStore(cfg config.StorageConfig, logger *zap.Logger) (*MinioStore, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("storage configuration is incomplete")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &MinioStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		timeout:       timeout,
		logger:        logger,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist and makes its
// objects publicly readable, since asset urls are served to browsers.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.Info("Created storage bucket", zap.String("bucket", s.bucket))
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

// Upload normalizes the local file for profile and stores it under a fresh
// key in the profile's folder.
func (s *MinioStore) Upload(ctx context.Context, localPath string, profile Profile) (domain.Asset, error) {
	img, err := prepare(localPath, profile)
	if err != nil {
		return domain.Asset{}, err
	}

	key := fmt.Sprintf("%s/%s.%s", profile.Folder, uuid.NewString(), img.ext)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := minio.PutObjectOptions{
		ContentType: img.contentType,
	}
	if _, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(img.data), int64(len(img.data)), opts); err != nil {
		return domain.Asset{}, fmt.Errorf("failed to put object: %w", err)
	}

	s.logger.Debug("Uploaded asset", zap.String("remote_id", key), zap.Int("bytes", len(img.data)))

	return domain.Asset{
		URL:      s.URL(key),
		RemoteID: key,
	}, nil
}

// Delete removes the object identified by remoteID.
func (s *MinioStore) Delete(ctx context.Context, remoteID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// RemoveObject succeeds for missing keys, so existence is checked first.
	if _, err := s.client.StatObject(ctx, s.bucket, remoteID, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return ErrAssetNotFound
		}
		return fmt.Errorf("failed to stat object: %w", err)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, remoteID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// URL returns the public address of an object key.
func (s *MinioStore) URL(key string) string {
	return s.publicBaseURL + "/" + s.bucket + "/" + key
}
