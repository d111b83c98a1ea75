package usecase

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/cosmicreseller/backend/internal/domain"
)

// MockListingSource is a mock implementation of domain.ListingSource
type MockListingSource struct {
	items      []domain.RawListing
	err        error
	fetchCalls int
	keyword    string
	maxItems   int
}

func (m *MockListingSource) Fetch(ctx context.Context, keyword string, maxItems int) ([]domain.RawListing, error) {
	m.fetchCalls++
	m.keyword = keyword
	m.maxItems = maxItems
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func newTestService(ebay, facebook *MockListingSource) *DealService {
	return NewDealService(map[string]domain.ListingSource{
		"ebay":     ebay,
		"facebook": facebook,
	})
}

func TestFilterCheapItems(t *testing.T) {
	t.Run("filters items below average times ratio", func(t *testing.T) {
		items := []domain.RawListing{
			{Title: "A", PriceText: "£100", URL: "u1"},
			{Title: "B", PriceText: "£200", URL: "u2"},
			{Title: "C", PriceText: "£300", URL: "u3"},
		}

		result := FilterCheapItems(items, 0.8)

		if result.AveragePrice != 200.0 {
			t.Errorf("AveragePrice = %v, want 200.0", result.AveragePrice)
		}
		want := []domain.ParsedListing{{Title: "A", Price: 100.0, URL: "u1"}}
		if !reflect.DeepEqual(result.CheapItems, want) {
			t.Errorf("CheapItems = %v, want %v", result.CheapItems, want)
		}
	})

	t.Run("returns zero average and empty slice when nothing parses", func(t *testing.T) {
		items := []domain.RawListing{
			{Title: "A", PriceText: "N/A", URL: "u1"},
			{Title: "B", PriceText: "—", URL: "u2"},
		}

		result := FilterCheapItems(items, 0.8)

		if result.AveragePrice != 0.0 {
			t.Errorf("AveragePrice = %v, want 0.0", result.AveragePrice)
		}
		if len(result.CheapItems) != 0 {
			t.Errorf("CheapItems = %v, want empty", result.CheapItems)
		}
	})

	t.Run("unparsable listings never reach the average", func(t *testing.T) {
		items := []domain.RawListing{
			{Title: "A", PriceText: "£100", URL: "u1"},
			{Title: "junk", PriceText: "contact seller", URL: "u2"},
			{Title: "B", PriceText: "£300", URL: "u3"},
		}

		result := FilterCheapItems(items, 0.9)

		if result.AveragePrice != 200.0 {
			t.Errorf("AveragePrice = %v, want 200.0 (junk excluded)", result.AveragePrice)
		}
	})

	t.Run("item priced exactly at threshold is excluded", func(t *testing.T) {
		// Average is 100, threshold 0.8 → cutoff exactly 80.
		items := []domain.RawListing{
			{Title: "edge", PriceText: "80", URL: "u1"},
			{Title: "high", PriceText: "120", URL: "u2"},
		}

		result := FilterCheapItems(items, 0.8)

		if result.AveragePrice != 100.0 {
			t.Fatalf("AveragePrice = %v, want 100.0", result.AveragePrice)
		}
		if len(result.CheapItems) != 0 {
			t.Errorf("CheapItems = %v, want empty (strict inequality)", result.CheapItems)
		}
	})

	t.Run("cheap items preserve original order", func(t *testing.T) {
		items := []domain.RawListing{
			{Title: "C", PriceText: "£30", URL: "u3"},
			{Title: "A", PriceText: "£10", URL: "u1"},
			{Title: "X", PriceText: "£500", URL: "ux"},
			{Title: "B", PriceText: "£20", URL: "u2"},
		}

		result := FilterCheapItems(items, 0.9)

		var titles []string
		for _, item := range result.CheapItems {
			titles = append(titles, item.Title)
		}
		want := []string{"C", "A", "B"}
		if !reflect.DeepEqual(titles, want) {
			t.Errorf("cheap titles = %v, want %v", titles, want)
		}
	})

	t.Run("average is independent of item order", func(t *testing.T) {
		forward := []domain.RawListing{
			{Title: "A", PriceText: "£12.50", URL: "u1"},
			{Title: "B", PriceText: "£99", URL: "u2"},
			{Title: "C", PriceText: "£300", URL: "u3"},
		}
		reversed := []domain.RawListing{forward[2], forward[1], forward[0]}

		a := FilterCheapItems(forward, 0.5)
		b := FilterCheapItems(reversed, 0.5)

		if math.Abs(a.AveragePrice-b.AveragePrice) > priceTolerance {
			t.Errorf("average changed with order: %v vs %v", a.AveragePrice, b.AveragePrice)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		items := []domain.RawListing{
			{Title: "A", PriceText: "£100", URL: "u1"},
			{Title: "B", PriceText: "£400", URL: "u2"},
		}

		first := FilterCheapItems(items, 0.8)
		second := FilterCheapItems(items, 0.8)

		if !reflect.DeepEqual(first, second) {
			t.Errorf("results differ across runs: %v vs %v", first, second)
		}
	})
}

func TestGetCheapItems(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves source case-insensitively with surrounding whitespace", func(t *testing.T) {
		ebay := &MockListingSource{items: []domain.RawListing{
			{Title: "A", PriceText: "£100", URL: "u1"},
		}}
		facebook := &MockListingSource{}
		svc := newTestService(ebay, facebook)

		result, err := svc.GetCheapItems(ctx, "  Ebay ", "bike", 10, 0.8)
		if err != nil {
			t.Fatalf("GetCheapItems() error = %v, want nil", err)
		}
		if ebay.fetchCalls != 1 {
			t.Errorf("ebay fetchCalls = %d, want 1", ebay.fetchCalls)
		}
		if facebook.fetchCalls != 0 {
			t.Errorf("facebook fetchCalls = %d, want 0", facebook.fetchCalls)
		}
		if result.AveragePrice != 100.0 {
			t.Errorf("AveragePrice = %v, want 100.0", result.AveragePrice)
		}
	})

	t.Run("fails with ErrUnsupportedSource before any fetch", func(t *testing.T) {
		ebay := &MockListingSource{}
		facebook := &MockListingSource{}
		svc := newTestService(ebay, facebook)

		_, err := svc.GetCheapItems(ctx, "bogus", "bike", 10, 0.8)
		if !errors.Is(err, domain.ErrUnsupportedSource) {
			t.Fatalf("error = %v, want ErrUnsupportedSource", err)
		}
		if got := ebay.fetchCalls + facebook.fetchCalls; got != 0 {
			t.Errorf("collaborators invoked %d times, want 0", got)
		}
	})

	t.Run("error message carries the original source value", func(t *testing.T) {
		svc := newTestService(&MockListingSource{}, &MockListingSource{})

		_, err := svc.GetCheapItems(ctx, " Craigslist ", "bike", 10, 0.8)
		if err == nil || !strings.Contains(err.Error(), " Craigslist ") {
			t.Errorf("error = %v, want original untrimmed value in message", err)
		}
	})

	t.Run("propagates collaborator errors unchanged", func(t *testing.T) {
		fetchErr := errors.New("navigation timeout")
		facebook := &MockListingSource{err: fetchErr}
		svc := newTestService(&MockListingSource{}, facebook)

		_, err := svc.GetCheapItems(ctx, "facebook", "sofa", 5, 0.8)
		if !errors.Is(err, fetchErr) {
			t.Errorf("error = %v, want %v", err, fetchErr)
		}
		if facebook.fetchCalls != 1 {
			t.Errorf("facebook fetchCalls = %d, want 1", facebook.fetchCalls)
		}
	})

	t.Run("forwards keyword and maxItems to the collaborator", func(t *testing.T) {
		ebay := &MockListingSource{}
		svc := newTestService(ebay, &MockListingSource{})

		if _, err := svc.GetCheapItems(ctx, "ebay", "record player", 42, 0.5); err != nil {
			t.Fatalf("GetCheapItems() error = %v, want nil", err)
		}
		if ebay.keyword != "record player" {
			t.Errorf("keyword = %q, want %q", ebay.keyword, "record player")
		}
		if ebay.maxItems != 42 {
			t.Errorf("maxItems = %d, want 42", ebay.maxItems)
		}
	})
}
