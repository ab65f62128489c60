package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"thriven-backend/internal/config"
	"thriven-backend/internal/shared"
)

// Uploaded keys are content-addressed by uuid, so variants never change in place
const immutableCache = "public, max-age=31536000, immutable"

// MinIOStorage is the media bucket: originals and their resized variants
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIOStorage connects to MinIO and makes sure the media bucket exists
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	s := &MinIOStorage{client: client, bucket: cfg.Bucket}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinIOStorage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *MinIOStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	opts := minio.PutObjectOptions{ContentType: contentType, CacheControl: immutableCache}
	if _, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// Download reads a whole object. A missing key unwraps to shared.ErrNotFound.
func (s *MinIOStorage) Download(ctx context.Context, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.objectErr(key, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, s.objectErr(key, err)
	}
	return data, nil
}

func (s *MinIOStorage) objectErr(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("object %s: %w", key, shared.ErrNotFound)
	}
	return fmt.Errorf("download %s: %w", key, err)
}

// RemoveFolder deletes every object under prefix and reports how many were sent for removal
func (s *MinIOStorage) RemoveFolder(ctx context.Context, prefix string) (int, error) {
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		sent    int
		listErr error
	)
	toRemove := make(chan minio.ObjectInfo)
	go func() {
		defer close(toRemove)
		for obj := range s.client.ListObjects(listCtx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
			if obj.Err != nil {
				listErr = obj.Err
				return
			}
			select {
			case toRemove <- obj:
				sent++
			case <-listCtx.Done():
				return
			}
		}
	}()

	// the result channel must be drained for RemoveObjects to finish
	var removeErr error
	for rmErr := range s.client.RemoveObjects(ctx, s.bucket, toRemove, minio.RemoveObjectsOptions{}) {
		if rmErr.Err != nil && removeErr == nil {
			removeErr = fmt.Errorf("remove %s: %w", rmErr.ObjectName, rmErr.Err)
			cancel()
		}
	}
	if removeErr != nil {
		return 0, removeErr
	}
	if listErr != nil {
		return 0, fmt.Errorf("list %s: %w", prefix, listErr)
	}
	return sent, nil
}

// Ping checks the bucket is reachable
func (s *MinIOStorage) Ping(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("minio ping: %w", err)
	}
	return nil
}
