package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SearchesTotal counts deal searches by source.
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cosmicreseller_searches_total",
			Help: "Total deal searches dispatched, by source",
		},
		[]string{"source"},
	)

	// ListingsFetched counts raw listings returned by collaborators.
	ListingsFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cosmicreseller_listings_fetched_total",
			Help: "Raw listings returned by source collaborators",
		},
		[]string{"source"},
	)

	// PriceParseFailures counts listings dropped for unparsable price text.
	PriceParseFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cosmicreseller_price_parse_failures_total",
			Help: "Listings dropped because their price text did not parse",
		},
	)
)

var registerOnce sync.Once

// Handler registers the collectors and returns the /metrics HTTP handler.
// Registration runs once regardless of how many routers are built.
func Handler() http.Handler {
	registerOnce.Do(func() {
		prometheus.MustRegister(SearchesTotal, ListingsFetched, PriceParseFailures)
	})
	return promhttp.Handler()
}
