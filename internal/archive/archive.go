// Package archive copies rendered documents to S3-compatible object storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Archiver stores rendered documents. Implementations must be safe for
// concurrent use.
type Archiver interface {
	Store(ctx context.Context, wispID, filename string, pdf []byte) (string, error)
	Remove(ctx context.Context, wispID string) error
}

// Config holds the object storage connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool

	// Region skips the bucket location lookup when set.
	Region string
}

// MinioArchiver writes documents under wisps/<id>/ in one bucket.
type MinioArchiver struct {
	client *minio.Client
	bucket string
}

// New creates a MinioArchiver. It does not contact the server.
func New(cfg Config) (*MinioArchiver, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioArchiver{client: client, bucket: cfg.Bucket}, nil
}

// ObjectKey returns the object name for a document of wispID.
func ObjectKey(wispID, filename string) string {
	return path.Join("wisps", wispID, path.Base(filename))
}

// EnsureBucket creates the bucket if it doesn't exist.
func (a *MinioArchiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Store uploads pdf and returns its object name.
func (a *MinioArchiver) Store(ctx context.Context, wispID, filename string, pdf []byte) (string, error) {
	key := ObjectKey(wispID, filename)
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(pdf), int64(len(pdf)), minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}

// Remove deletes every archived document of wispID.
func (a *MinioArchiver) Remove(ctx context.Context, wispID string) error {
	prefix := path.Join("wisps", wispID) + "/"
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		if err := a.client.RemoveObject(ctx, a.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to delete %s: %w", obj.Key, err)
		}
	}
	return nil
}
