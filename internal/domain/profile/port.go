package profile

import "context"

// Fetcher port (interface for the remote profile store)
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Profile, error)
}
