package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const objectPrefix = "photos/"

// S3Storage stores listing images in a MinIO bucket and hands out public URLs.
type S3Storage struct {
	client  *minio.Client
	bucket  string
	baseURL string
	logger  *logger.Logger
}

func NewS3Storage(ctx context.Context, endpoint, accessKey, secretKey, bucketName string, useSSL bool, log *logger.Logger) (*S3Storage, error) {
	log = log.Named("S3Storage")
	log.Info("Initializing MinIO storage", zap.String("endpoint", endpoint), zap.String("bucket", bucketName), zap.Bool("use_ssl", useSSL))

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Error("Failed to create MinIO client", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			log.Error("Failed to create bucket", zap.String("bucket", bucketName), zap.Error(err))
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
		}
		log.Info("Bucket created", zap.String("bucket", bucketName))
	}

	return &S3Storage{
		client:  client,
		bucket:  bucketName,
		baseURL: client.EndpointURL().String(),
		logger:  log,
	}, nil
}

// Store uploads data under a fresh key keeping the original extension.
func (s *S3Storage) Store(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	objectKey := objectPrefix + uuid.New().String() + strings.ToLower(filepath.Ext(fileName))

	info, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"original-filename": filepath.Base(fileName)},
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("key", objectKey), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}
	s.logger.Debug("Object uploaded", zap.String("key", info.Key), zap.String("etag", info.ETag), zap.Int64("size", info.Size))
	return objectURL(s.baseURL, s.bucket, objectKey), nil
}

// Release removes the object behind ref. A ref this storage does not own
// reports false without an error.
func (s *S3Storage) Release(ctx context.Context, ref string) (bool, error) {
	objectKey, ok := objectKeyFromRef(s.bucket, ref)
	if !ok {
		s.logger.Debug("Ignoring foreign image reference", zap.String("ref", ref))
		return false, nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return false, fmt.Errorf("failed to remove object %s: %w", objectKey, err)
	}
	return true, nil
}

func objectURL(baseURL, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(baseURL, "/"), bucket, key)
}

// objectKeyFromRef accepts either a URL produced by Store or a bare object key.
func objectKeyFromRef(bucket, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	marker := "/" + bucket + "/"
	if i := strings.Index(ref, marker); i >= 0 {
		ref = ref[i+len(marker):]
	}
	if !strings.HasPrefix(ref, objectPrefix) || len(ref) == len(objectPrefix) {
		return "", false
	}
	return ref, true
}
