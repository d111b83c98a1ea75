package ebay

import "github.com/cosmicreseller/backend/internal/domain"

// mapSummary converts a Browse item summary to a RawListing. Summaries
// without a price carry no usable signal and are dropped (ok=false). The
// price is rendered back to text ("GBP 123.45") so every listing enters the
// core pipeline through the same normalizer, whichever source produced it.
func mapSummary(item itemSummary) (domain.RawListing, bool) {
	if item.Price == nil || item.Price.Value == "" {
		return domain.RawListing{}, false
	}

	title := item.Title
	if title == "" {
		title = "N/A"
	}
	url := item.ItemWebURL
	if url == "" {
		url = "#"
	}

	return domain.RawListing{
		Title:     title,
		PriceText: item.Price.Currency + " " + item.Price.Value,
		URL:       url,
	}, true
}
