package repositories

import (
	"context"
	"io"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
)

// BlobStore is the object storage holding recorded audio
type BlobStore interface {
	// Put writes an object, overwriting any object at the same key
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Get reads an object, entities.ErrBlobNotFound when absent
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes an object; a missing object is not an error
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored at key
	Exists(ctx context.Context, key string) (bool, error)

	// URL returns the public URL of the object at key
	URL(key string) string
}

// BlobStoreInspector is implemented by blob stores that can report on their bucket
type BlobStoreInspector interface {
	Info(ctx context.Context) (*entities.BlobStoreInfo, error)
}

// BlobObjectReader is implemented by blob stores that keep each object's content type
type BlobObjectReader interface {
	// GetObject reads an object, entities.ErrBlobNotFound when absent
	GetObject(ctx context.Context, key string) (*entities.BlobObject, error)
}
