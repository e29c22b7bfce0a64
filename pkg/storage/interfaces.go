package storage

import "context"

// ObjectStorage is the external host for photo binaries. Upload returns the
// stable public URL of the stored object.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
