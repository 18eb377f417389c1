package outbound

import "context"

// ResultFetcherPort retrieves the payload behind a remote synthesis result
// URL with a bounded timeout.
type ResultFetcherPort interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
