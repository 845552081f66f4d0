// Package gcs stores objects in Google Cloud Storage. Firebase Storage
// buckets are GCS buckets, so FIREBASE_STORAGE_BUCKET works as is.
package gcs

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	gcstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/kbukum/visitnote/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderGCS, func(ctx context.Context, cfg storage.Config) (storage.Storage, error) {
		return NewStorage(ctx, cfg.GCS)
	})
}

// Storage implements storage.Storage on one bucket.
type Storage struct {
	client *gcstorage.Client
	bucket string
}

var (
	_ storage.Storage = (*Storage)(nil)
	_ io.Closer       = (*Storage)(nil)
)

// NewStorage creates a client from the service account file, or ADC when
// none is given.
func NewStorage(ctx context.Context, cfg storage.GCSConfig) (*Storage, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := gcstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: create gcs client: %w", err)
	}
	return &Storage{client: client, bucket: bucketName(cfg.Bucket)}, nil
}

// bucketName accepts "name", "gs://name" and "name.appspot.com".
func bucketName(b string) string {
	return strings.TrimSuffix(strings.TrimPrefix(b, "gs://"), "/")
}

func (s *Storage) object(key string) *gcstorage.ObjectHandle {
	return s.client.Bucket(s.bucket).Object(key)
}

func (s *Storage) Upload(ctx context.Context, key string, reader io.Reader) error {
	w := s.object(key).NewWriter(ctx)
	w.ContentType = storage.ContentType(key)
	if _, err := io.Copy(w, reader); err != nil {
		w.Close()
		return fmt.Errorf("storage: gcs upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("storage: gcs upload: %w", err)
	}
	return nil
}

func (s *Storage) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := s.object(key).Attrs(ctx); err != nil {
		if stderrors.Is(err, gcstorage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("storage: gcs attrs: %w", err)
	}
	return true, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.object(key).Delete(ctx); err != nil && !stderrors.Is(err, gcstorage.ErrObjectNotExist) {
		return fmt.Errorf("storage: gcs delete: %w", err)
	}
	return nil
}

// URL returns the storage.googleapis.com address of key.
func (s *Storage) URL(_ context.Context, key string) (string, error) {
	return objectURL(s.bucket, key), nil
}

func objectURL(bucket, key string) string {
	return "https://storage.googleapis.com/" + bucket + "/" + (&url.URL{Path: key}).EscapedPath()
}

// Close releases the client.
func (s *Storage) Close() error {
	return s.client.Close()
}
