package storage

import "context"

// BlobStore is an opaque key-value store of serialized blobs. Get reports
// found=false for a key that was never written.
type BlobStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
