package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
)

// NatsObjectStore keeps recordings in a NATS JetStream object store bucket.
// Objects are not directly addressable over HTTP, so URL points at the
// API's blob passthrough route.
type NatsObjectStore struct {
	store     nats.ObjectStore
	bucket    string
	publicURL string
}

var (
	_ repositories.BlobStore          = (*NatsObjectStore)(nil)
	_ repositories.BlobStoreInspector = (*NatsObjectStore)(nil)
	_ repositories.BlobObjectReader   = (*NatsObjectStore)(nil)
)

// NewNatsObjectStore creates the bucket, or binds to it when it already exists
func NewNatsObjectStore(js nats.JetStreamContext, bucket, publicURL string) (*NatsObjectStore, error) {
	store, err := js.CreateObjectStore(&nats.ObjectStoreConfig{
		Bucket:      bucket,
		Description: fmt.Sprintf("Voice recordings for the %s bucket.", bucket),
		Storage:     nats.FileStorage,
		Replicas:    1,
	})
	if err != nil {
		if !errors.Is(err, jetstream.ErrBucketExists) && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
			return nil, fmt.Errorf("failed to create object store bucket '%s': %w", bucket, err)
		}
		store, err = js.ObjectStore(bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to bind to existing object store bucket '%s': %w", bucket, err)
		}
	}

	return &NatsObjectStore{
		store:     store,
		bucket:    bucket,
		publicURL: publicURL,
	}, nil
}

// Put writes an object, replacing any previous revision
func (n *NatsObjectStore) Put(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	meta := &nats.ObjectMeta{Name: key}
	if contentType != "" {
		meta.Headers = nats.Header{}
		meta.Headers.Set("Content-Type", contentType)
	}

	if _, err := n.store.Put(meta, reader); err != nil {
		return fmt.Errorf("failed to put object '%s' to bucket '%s': %w", key, n.bucket, err)
	}
	return nil
}

// Get reads an object
func (n *NatsObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := n.GetObject(ctx, key)
	if err != nil {
		return nil, err
	}
	return obj.Data, nil
}

// GetObject reads an object together with the content type stored in its headers
func (n *NatsObjectStore) GetObject(_ context.Context, key string) (*entities.BlobObject, error) {
	obj, err := n.store.Get(key)
	if err != nil {
		if errors.Is(err, nats.ErrObjectNotFound) {
			return nil, entities.ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to get object '%s' from bucket '%s': %w", key, n.bucket, err)
	}

	out := &entities.BlobObject{}
	if info, err := obj.Info(); err == nil && info.Headers != nil {
		out.ContentType = info.Headers.Get("Content-Type")
	}

	data, readErr := io.ReadAll(obj)
	closeErr := obj.Close()

	if readErr != nil {
		return nil, fmt.Errorf("failed to read object '%s': %w", key, readErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close object '%s': %w", key, closeErr)
	}

	out.Data = data
	return out, nil
}

// Delete removes an object; deleting a missing object succeeds
func (n *NatsObjectStore) Delete(_ context.Context, key string) error {
	err := n.store.Delete(key)
	if err != nil && !errors.Is(err, nats.ErrObjectNotFound) {
		return fmt.Errorf("failed to delete object '%s' from bucket '%s': %w", key, n.bucket, err)
	}
	return nil
}

// Exists reports whether a live object is stored at key
func (n *NatsObjectStore) Exists(_ context.Context, key string) (bool, error) {
	info, err := n.store.GetInfo(key)
	if err != nil {
		if errors.Is(err, nats.ErrObjectNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object '%s': %w", key, err)
	}
	return !info.Deleted, nil
}

// Info reports the bucket's status
func (n *NatsObjectStore) Info(_ context.Context) (*entities.BlobStoreInfo, error) {
	status, err := n.store.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read status of bucket '%s': %w", n.bucket, err)
	}

	return &entities.BlobStoreInfo{
		Backend:      "nats",
		Bucket:       status.Bucket(),
		BucketExists: true,
		SizeBytes:    status.Size(),
	}, nil
}

// URL returns the passthrough URL served by the API
func (n *NatsObjectStore) URL(key string) string {
	return joinURL(n.publicURL, "v1", "blobs", key)
}
