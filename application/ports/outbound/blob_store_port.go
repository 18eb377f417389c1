package outbound

import "context"

// BlobStorePort is opaque blob get/put by path. Paths are scoped per job by
// the caller to avoid collisions. Put returns the fetchable location of the
// stored object.
type BlobStorePort interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
}
