// Package storage wraps the object store: client lifecycle, object naming
// and identifier resolution.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/resman-simple/apperrors"
	"github.com/resman-simple/config"
	"github.com/resman-simple/models"
)

// ObjectStore is the object-store contract the services depend on. Stat
// returns apperrors.ErrNotFound when the object does not exist; any transport
// or backend failure is wrapped as apperrors.ErrStorage.
type ObjectStore interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (models.ObjectInfo, error)
	Stat(ctx context.Context, objectName string) (models.ObjectInfo, error)
	Remove(ctx context.Context, objectName string) error
	List(ctx context.Context, prefix string) ([]models.ObjectInfo, error)
	AccessURL(ctx context.Context, objectName string) (string, error)
}

// MinioStore implements ObjectStore against a MinIO/S3 endpoint.
type MinioStore struct {
	client        *minio.Client
	endpoint      string
	bucket        string
	useSSL        bool
	public        bool
	presignExpiry time.Duration
}

// NewMinioStore connects to the object store and ensures the bucket exists.
// When the bucket is configured as public it gets an anonymous read policy so
// permanent URLs work without presigning.
func NewMinioStore(cfg config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	store := &MinioStore{
		client:        client,
		endpoint:      cfg.MinioEndpoint,
		bucket:        cfg.MinioBucket,
		useSSL:        cfg.MinioUseSSL,
		public:        cfg.MinioPublic,
		presignExpiry: cfg.PresignExpiry,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Printf("Created bucket %s", cfg.MinioBucket)
	}

	if cfg.MinioPublic {
		policy := fmt.Sprintf(`{
			"Version": "2012-10-17",
			"Statement": [{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}]
		}`, cfg.MinioBucket)
		if err := client.SetBucketPolicy(ctx, cfg.MinioBucket, policy); err != nil {
			return nil, fmt.Errorf("failed to set bucket policy: %w", err)
		}
	}

	return store, nil
}

// Put uploads an object under the given name.
func (s *MinioStore) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (models.ObjectInfo, error) {
	info, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return models.ObjectInfo{}, apperrors.Storage(err)
	}

	return models.ObjectInfo{
		Bucket:      s.bucket,
		Name:        objectName,
		ETag:        info.ETag,
		VersionID:   info.VersionID,
		Size:        info.Size,
		ContentType: contentType,
	}, nil
}

// Stat fetches metadata for an exact object name.
func (s *MinioStore) Stat(ctx context.Context, objectName string) (models.ObjectInfo, error) {
	info, err := s.client.StatObject(ctx, s.bucket, objectName, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return models.ObjectInfo{}, apperrors.NotFoundf("object %s", objectName)
		}
		return models.ObjectInfo{}, apperrors.Storage(err)
	}

	return models.ObjectInfo{
		Bucket:      s.bucket,
		Name:        objectName,
		ETag:        info.ETag,
		VersionID:   info.VersionID,
		Size:        info.Size,
		ContentType: info.ContentType,
	}, nil
}

// Remove deletes an object by exact name.
func (s *MinioStore) Remove(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

// List enumerates the bucket namespace, optionally under a prefix. Listing is
// not isolated from concurrent writes; a transient miss during the scan is
// acceptable.
func (s *MinioStore) List(ctx context.Context, prefix string) ([]models.ObjectInfo, error) {
	objects := make([]models.ObjectInfo, 0)

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, apperrors.Storage(obj.Err)
		}
		objects = append(objects, models.ObjectInfo{
			Bucket:      s.bucket,
			Name:        obj.Key,
			ETag:        obj.ETag,
			VersionID:   obj.VersionID,
			Size:        obj.Size,
			ContentType: obj.ContentType,
		})
	}

	return objects, nil
}

// AccessURL returns a permanent URL for public buckets or a presigned URL
// otherwise. The object name is taken as-is; resolution happens upstream.
func (s *MinioStore) AccessURL(ctx context.Context, objectName string) (string, error) {
	if s.public {
		scheme := "http"
		if s.useSSL {
			scheme = "https"
		}
		return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName), nil
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, s.presignExpiry, url.Values{})
	if err != nil {
		return "", apperrors.Storage(err)
	}
	return presigned.String(), nil
}
