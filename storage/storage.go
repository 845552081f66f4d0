package storage

import (
	"context"
	"io"
	"mime"
	"path/filepath"
)

// Storage is the object storage contract used by the document pipeline.
type Storage interface {
	// Upload writes reader to key, replacing any existing object.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// Exists reports whether key exists.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the address of key, whether or not it is public.
	URL(ctx context.Context, key string) (string, error)
}

// ContentType guesses the MIME type of key from its extension.
func ContentType(key string) string {
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
