package util

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sunthewhat/olymp-cert-api/common"
)

func InitMinIO() error {
	if common.Config.MinIoEndpoint == nil || common.Config.MinIoAccessKey == nil || common.Config.MinIoSecretKey == nil {
		return fmt.Errorf("MinIO configuration is incomplete")
	}

	secure := true
	if common.Config.MinIoSecure != nil {
		secure = *common.Config.MinIoSecure
	}

	client, err := minio.New(*common.Config.MinIoEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(*common.Config.MinIoAccessKey, *common.Config.MinIoSecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	common.MinIOClient = client
	return nil
}

// MinIOStorage stores objects in a single bucket, keyed "<category>/<key>"
type MinIOStorage struct {
	client *minio.Client
	bucket string

	mu          sync.Mutex
	bucketReady bool
}

// NewMinIOStorage creates a storage over bucket; the bucket is created on first write
func NewMinIOStorage(client *minio.Client, bucket string) *MinIOStorage {
	return &MinIOStorage{client: client, bucket: bucket}
}

var _ ObjectStorage = (*MinIOStorage)(nil)

func (s *MinIOStorage) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bucketReady {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		slog.Info("MinIO bucket created", "bucket", s.bucket)
	}

	s.bucketReady = true
	return nil
}

// Store uploads data and returns its object path. An empty key gets a random
// uuid name.
func (s *MinIOStorage) Store(ctx context.Context, data []byte, category string, key string, contentType string) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	objectName := ObjectName(category, key, contentType)
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	slog.Debug("MinIO object stored", "bucket", s.bucket, "object", objectName, "size", len(data))
	return objectName, nil
}

func (s *MinIOStorage) Retrieve(ctx context.Context, objectName string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, objectName)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

func (s *MinIOStorage) Remove(ctx context.Context, objectName string) error {
	if objectName == "" {
		return nil
	}

	err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// ObjectName builds "<category>/<key>", adding a uuid name and an extension
// derived from contentType when needed
func ObjectName(category string, key string, contentType string) string {
	if key == "" {
		key = uuid.New().String()
	}
	if path.Ext(key) == "" {
		key += extensionFor(contentType)
	}
	return path.Join(strings.Trim(category, "/"), strings.TrimLeft(key, "/"))
}

func extensionFor(contentType string) string {
	switch contentType {
	case "application/pdf":
		return ".pdf"
	case "font/ttf", "application/x-font-ttf":
		return ".ttf"
	case "font/otf", "application/x-font-otf":
		return ".otf"
	case "image/png":
		return ".png"
	default:
		return ""
	}
}

// JoinURL joins a base URL and a route path with exactly one slash
func JoinURL(base string, routePath string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(routePath, "/")
}
