package adapters

import (
	"audiobook-generation-api/application/ports/outbound"
	"context"
	"net/http"
)

type resultFetcher struct {
	fetcher ContentFetcher
}

// NewResultFetcher retrieves remote synthesis results. The fetch deadline is
// the shorter of the request context and the fetcher's client timeout.
func NewResultFetcher(fetcher ContentFetcher) outbound.ResultFetcherPort {
	return &resultFetcher{
		fetcher: fetcher,
	}
}

func (r *resultFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	return r.fetcher.FetchContent(req)
}
