package recipeapi

import (
	"context"
	"errors"
	"time"
)

// ErrUpstream wraps every failure talking to the recipe API: transport
// errors, non-2xx statuses, unreadable or non-JSON bodies.
var ErrUpstream = errors.New("recipe api request failed")

// Endpoint labels used for observation.
const (
	EndpointSearch  = "search"
	EndpointDetails = "details"
)

// Provider fetches raw JSON from the third-party recipe API. Bodies are
// returned unmodified so the proxies can pass them straight through.
type Provider interface {
	Search(ctx context.Context, query string) ([]byte, error)
	Details(ctx context.Context, id uint64) ([]byte, error)
}

// Observer is notified after every upstream call.
type Observer interface {
	ObserveUpstream(endpoint string, err error, elapsed time.Duration)
}
