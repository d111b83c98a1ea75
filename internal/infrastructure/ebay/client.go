package ebay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cosmicreseller/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	tokenScope = "https://api.ebay.com/oauth/api_scope"

	// Browse caps a single page at 200 summaries.
	maxPageSize = 200

	// Refresh the app token a minute before eBay expires it.
	tokenExpirySkew = 60 * time.Second

	treeCacheTTL = 24 * time.Hour
)

// Client fetches item listings from the eBay Browse API. It implements
// domain.ListingSource.
//
// The OAuth2 app token lives as scoped state on the client with explicit
// expiry-check-then-refresh, guarded by a mutex so concurrent searches share
// one token.
type Client struct {
	httpClient    *http.Client
	clientID      string
	clientSecret  string
	baseURL       string
	marketplaceID string
	cache         domain.CacheRepository
	rateLimiter   *rate.Limiter
	debug         bool

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates a new eBay Browse client. baseURL covers the OAuth,
// Taxonomy and Browse endpoints (https://api.ebay.com in production; a test
// server in tests). cache holds the resolved category tree id.
func NewClient(clientID, clientSecret, baseURL, marketplaceID string, cache domain.CacheRepository) *Client {
	// eBay's application limit works out to a handful of calls per second;
	// 5 rps with a small burst keeps well inside it.
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		clientID:      clientID,
		clientSecret:  clientSecret,
		baseURL:       strings.TrimRight(baseURL, "/"),
		marketplaceID: marketplaceID,
		cache:         cache,
		rateLimiter:   limiter,
	}
}

// SetDebug enables verbose request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Fetch retrieves up to maxItems listings for keyword, paginating the Browse
// API by offset. The keyword is first resolved to a leaf category to cut
// noise; listings without a price are skipped and results are deduplicated
// by item URL.
func (c *Client) Fetch(ctx context.Context, keyword string, maxItems int) ([]domain.RawListing, error) {
	categoryID, err := c.resolveCategoryID(ctx, keyword)
	if err != nil {
		return nil, err
	}

	results := make([]domain.RawListing, 0, maxItems)
	seen := make(map[string]struct{})
	offset := 0

	for offset < maxItems && len(results) < maxItems {
		limit := maxItems - offset
		if limit > maxPageSize {
			limit = maxPageSize
		}

		page, err := c.searchPage(ctx, keyword, limit, offset, categoryID)
		if err != nil {
			return nil, err
		}
		if len(page.ItemSummaries) == 0 {
			break
		}

		for _, item := range page.ItemSummaries {
			if len(results) >= maxItems {
				break
			}
			listing, ok := mapSummary(item)
			if !ok {
				continue
			}
			if _, dup := seen[listing.URL]; dup {
				continue
			}
			seen[listing.URL] = struct{}{}
			results = append(results, listing)
		}

		log.Printf("[EBAY] fetched %d summaries (offset=%d)", len(page.ItemSummaries), offset)

		offset += len(page.ItemSummaries)
		if page.Next == "" {
			break
		}
	}

	log.Printf("[EBAY] total collected: %d listings for %q", len(results), keyword)
	return results, nil
}

// appToken returns a valid OAuth2 app token, refreshing it when within the
// expiry skew.
func (c *Client) appToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-tokenExpirySkew)) {
		if c.debug {
			log.Printf("[EBAY] using cached app token")
		}
		return c.token, nil
	}

	log.Printf("[EBAY] fetching new app token")

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", tokenScope)

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.baseURL+"/identity/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAuthFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d, body: %s", domain.ErrAuthFailure, resp.StatusCode, string(body))
	}

	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", domain.ErrAuthFailure)
	}

	c.token = payload.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)

	if c.debug {
		log.Printf("[EBAY] app token expires in %ds", payload.ExpiresIn)
	}
	return c.token, nil
}

// resolveCategoryID maps a keyword to a leaf category id via the Taxonomy
// API. An empty id (no suggestions) is not an error; the search simply runs
// unfiltered.
func (c *Client) resolveCategoryID(ctx context.Context, keyword string) (string, error) {
	treeID, err := c.categoryTreeID(ctx)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/commerce/taxonomy/v1/category_tree/%s/get_category_suggestions", c.baseURL, treeID)
	params := url.Values{}
	params.Add("q", keyword)

	var payload categorySuggestionsResponse
	if err := c.getJSON(ctx, endpoint+"?"+params.Encode(), &payload); err != nil {
		return "", err
	}

	if len(payload.CategorySuggestions) == 0 {
		log.Printf("[EBAY] no category suggestions for keyword=%q", keyword)
		return "", nil
	}

	cat := payload.CategorySuggestions[0].Category
	log.Printf("[EBAY] resolved keyword=%q to category %s (%s) [tree=%s]",
		keyword, cat.CategoryID, cat.CategoryName, treeID)
	return cat.CategoryID, nil
}

// categoryTreeID looks up which taxonomy tree applies to the marketplace,
// caching the answer.
func (c *Client) categoryTreeID(ctx context.Context) (string, error) {
	cacheKey := "ebay:tree:" + c.marketplaceID
	if cached, err := c.cache.Get(ctx, cacheKey); err == nil {
		if treeID, ok := cached.(string); ok && treeID != "" {
			return treeID, nil
		}
	}

	endpoint := c.baseURL + "/commerce/taxonomy/v1/get_default_category_tree_id"
	params := url.Values{}
	params.Add("marketplace_id", c.marketplaceID)

	var payload categoryTreeResponse
	if err := c.getJSON(ctx, endpoint+"?"+params.Encode(), &payload); err != nil {
		return "", err
	}
	if payload.CategoryTreeID == "" {
		return "", fmt.Errorf("%w: empty category tree id", domain.ErrEbayAPIFailure)
	}

	if err := c.cache.Set(ctx, cacheKey, payload.CategoryTreeID, treeCacheTTL); err != nil {
		log.Printf("[EBAY] failed to cache category tree id: %v", err)
	}
	return payload.CategoryTreeID, nil
}

// searchPage queries one page of the Browse item_summary search.
func (c *Client) searchPage(ctx context.Context, keyword string, limit, offset int, categoryID string) (*browseSearchResponse, error) {
	endpoint := c.baseURL + "/buy/browse/v1/item_summary/search"

	params := url.Values{}
	params.Add("q", keyword)
	params.Add("limit", strconv.Itoa(limit))
	params.Add("offset", strconv.Itoa(offset))
	params.Add("sort", "best_match")

	filters := []string{
		"buyingOptions:{FIXED_PRICE}",
		"conditions:{USED|NEW}",
		"itemLocationCountry:GB",
		"deliveryCountry:GB",
	}
	if categoryID != "" {
		filters = append(filters, fmt.Sprintf("categoryId:{%s}", categoryID))
	}
	params.Add("filter", strings.Join(filters, ","))

	var payload browseSearchResponse
	if err := c.getJSON(ctx, endpoint+"?"+params.Encode(), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// getJSON performs an authorized GET with retries for transient failures.
func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		token, err := c.appToken(ctx)
		if err != nil {
			return err
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("X-EBAY-C-MARKETPLACE-ID", c.marketplaceID)
		req.Header.Set("Accept-Language", "en-GB")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrEbayAPIFailure, err)
			log.Printf("[EBAY] request error (attempt %d): %v", attempt, err)
			if attempt < 3 {
				time.Sleep(exponentialBackoff(attempt))
			}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized {
			// Token may have been revoked early; force a refresh and retry.
			c.mu.Lock()
			c.token = ""
			c.mu.Unlock()
			lastErr = fmt.Errorf("%w: status 401", domain.ErrEbayAPIFailure)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[EBAY] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrEbayAPIFailure, resp.StatusCode)
			if attempt < 3 {
				time.Sleep(exponentialBackoff(attempt))
			}
			continue
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	return lastErr
}

// exponentialBackoff returns the wait before the next retry: 500ms, 1s, 2s.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}
