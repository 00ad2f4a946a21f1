package objectstorage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"user_galleries/internal/storage"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage хранит приватные файлы. Ссылки на них выдаются только presigned.
type MinioStorage struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	URLExpiry time.Duration
}

func New(ctx context.Context, opts Options) (*MinioStorage, error) {
	const op = "objectstorage.New"

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ok, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !ok {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return NewWithClient(client, opts.Bucket, opts.URLExpiry), nil
}

func NewWithClient(client *minio.Client, bucket string, expiry time.Duration) *MinioStorage {
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &MinioStorage{client: client, bucket: bucket, expiry: expiry}
}

// Expiry - время жизни выданных ссылок
func (s *MinioStorage) Expiry() time.Duration {
	return s.expiry
}

// PresignedURL проверяет, что объект существует, и подписывает GET ссылку на него
func (s *MinioStorage) PresignedURL(ctx context.Context, objectName string) (string, error) {
	const op = "objectstorage.MinioStorage.PresignedURL"

	if _, err := s.client.StatObject(ctx, s.bucket, objectName, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", fmt.Errorf("%s: %w", op, storage.ErrObjectNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, s.expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return u.String(), nil
}
