package domain

import "errors"

var (
	// ErrPriceParse is returned when no numeric price can be extracted from
	// a listing's price text. Callers only distinguish parsed vs failed.
	ErrPriceParse = errors.New("no parsable price in text")

	// ErrUnsupportedSource is returned when a source identifier does not
	// resolve to a known marketplace collaborator.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrEbayAPIFailure is returned when an eBay API request fails
	ErrEbayAPIFailure = errors.New("eBay API request failed")

	// ErrAuthFailure is returned when OAuth token acquisition fails
	ErrAuthFailure = errors.New("eBay authentication failed")

	// ErrScrapeFailure is returned when the Marketplace page cannot be
	// loaded or parsed
	ErrScrapeFailure = errors.New("marketplace scrape failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
