package domain

// RawListing is an unprocessed marketplace listing as returned by a source
// collaborator. PriceText is free-form and locale-ambiguous: it may carry a
// currency symbol, thousands/decimal separators, non-breaking spaces, or no
// numeric content at all.
type RawListing struct {
	Title     string `json:"title"`
	PriceText string `json:"priceText"`
	URL       string `json:"url"`
}

// ParsedListing is a listing whose price text parsed successfully.
type ParsedListing struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
	URL   string  `json:"url"`
}

// FilterResult is the outcome of filtering a batch of raw listings.
// AveragePrice is the unweighted mean over every listing that parsed (not
// just the cheap subset) and is 0 when nothing parsed. CheapItems preserves
// the original listing order.
type FilterResult struct {
	AveragePrice float64         `json:"averagePrice"`
	CheapItems   []ParsedListing `json:"cheapItems"`
}

// SearchRequest represents a deal search request from a presentation layer.
type SearchRequest struct {
	Source         string  `json:"source" binding:"required"`
	Keyword        string  `json:"keyword" binding:"required"`
	MaxItems       int     `json:"maxItems"`
	ThresholdRatio float64 `json:"thresholdRatio"`
}
