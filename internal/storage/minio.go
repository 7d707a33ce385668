package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/foodshare/foodshare/internal/config"
)

// PhotoStore keeps listing photos in a MinIO bucket, keyed by listing id.
type PhotoStore struct {
	client *minio.Client
	bucket string
}

// NewPhotoStore creates the MinIO client and ensures the bucket exists.
func NewPhotoStore(cfg config.MinIOConfig) (*PhotoStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint not configured")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &PhotoStore{client: mc, bucket: cfg.Bucket}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// bucket may already exist
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

func photoKey(listingID string) string {
	return "listings/" + listingID
}

// Put stores the photo for a listing, replacing any previous one.
func (s *PhotoStore) Put(ctx context.Context, listingID string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, photoKey(listingID), r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put photo: %w", err)
	}
	return nil
}

// PresignedURL returns a presigned GET URL for the listing photo. The object
// is stat'ed first so a missing photo surfaces here, not at the redirect.
func (s *PhotoStore) PresignedURL(ctx context.Context, listingID string, expires time.Duration) (string, error) {
	key := photoKey(listingID)
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		return "", fmt.Errorf("stat photo: %w", err)
	}
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, expires, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign photo: %w", err)
	}
	return presigned.String(), nil
}
