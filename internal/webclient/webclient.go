package webclient

import "context"

// WebClient abstracts page retrieval so the fetcher never talks to net/http
// directly. Backends register themselves by name; see factory.go.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	// Get is a convenience method for simple GET requests
	Get(ctx context.Context, url string) (*Response, error)

	Close() error
}
