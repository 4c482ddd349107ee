package ministry

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch requests the URL and returns the response body.
	// Non-success responses are reported as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Limiter decides whether a keyed action may proceed right now.
type Limiter interface {
	// Allow reports whether an event for key may happen now.
	Allow(key string) bool
}
