package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cosmicreseller/backend/internal/domain"
	"github.com/cosmicreseller/backend/internal/observability"
)

// DealService routes deal searches to marketplace collaborators and filters
// the results down to listings priced below the market average.
type DealService struct {
	sources map[string]domain.ListingSource
}

// NewDealService creates a deal service over the given source registry.
// Keys are canonical lowercase source names ("facebook", "ebay").
func NewDealService(sources map[string]domain.ListingSource) *DealService {
	return &DealService{sources: sources}
}

// GetCheapItems fetches up to maxItems listings for keyword from the named
// source and returns the market average plus the listings priced strictly
// below averagePrice * thresholdRatio.
//
// The source name is matched case-insensitively after trimming whitespace;
// an unrecognized name fails with domain.ErrUnsupportedSource (carrying the
// original value) before any collaborator is invoked. Collaborator failures
// propagate unchanged: no retry, no partial-result salvage.
//
// thresholdRatio must already be validated by the caller to lie in (0, 1).
func (s *DealService) GetCheapItems(
	ctx context.Context,
	source string,
	keyword string,
	maxItems int,
	thresholdRatio float64,
) (*domain.FilterResult, error) {
	name := strings.ToLower(strings.TrimSpace(source))

	collaborator, ok := s.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, source)
	}

	observability.SearchesTotal.WithLabelValues(name).Inc()

	items, err := collaborator.Fetch(ctx, keyword, maxItems)
	if err != nil {
		return nil, err
	}

	observability.ListingsFetched.WithLabelValues(name).Add(float64(len(items)))
	log.Printf("[DEALS] source=%s keyword=%q fetched %d listings", name, keyword, len(items))

	result := FilterCheapItems(items, thresholdRatio)
	return &result, nil
}

// FilterCheapItems computes the average over every listing whose price text
// parses and keeps the parsed listings priced strictly below
// averagePrice * thresholdRatio, in their original order.
//
// Listings with unparsable price text are expected noise from heterogeneous
// marketplaces: they are dropped silently and contribute to neither the
// average nor the cheap subset. When no listing parses the result is
// (0, empty), distinct from "nonzero average but no cheap items".
func FilterCheapItems(items []domain.RawListing, thresholdRatio float64) domain.FilterResult {
	var prices []float64
	var parsed []domain.ParsedListing

	for _, item := range items {
		price, err := ParsePrice(item.PriceText)
		if err != nil {
			observability.PriceParseFailures.Inc()
			continue
		}
		prices = append(prices, price)
		parsed = append(parsed, domain.ParsedListing{
			Title: item.Title,
			Price: price,
			URL:   item.URL,
		})
	}

	if len(prices) == 0 {
		return domain.FilterResult{AveragePrice: 0, CheapItems: []domain.ParsedListing{}}
	}

	var sum float64
	for _, p := range prices {
		sum += p
	}
	average := sum / float64(len(prices))

	cheap := make([]domain.ParsedListing, 0, len(parsed))
	for _, item := range parsed {
		if item.Price < average*thresholdRatio {
			cheap = append(cheap, item)
		}
	}

	return domain.FilterResult{AveragePrice: average, CheapItems: cheap}
}
