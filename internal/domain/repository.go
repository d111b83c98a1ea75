package domain

import (
	"context"
	"time"
)

// ListingSource defines the interface for a marketplace collaborator that
// supplies raw listings for a keyword. Implementations own their pagination
// or scrolling, cap the result at maxItems, and deduplicate by URL.
type ListingSource interface {
	Fetch(ctx context.Context, keyword string, maxItems int) ([]RawListing, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
