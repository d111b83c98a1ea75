package facebook

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/cosmicreseller/backend/internal/domain"
)

const (
	searchURLFormat = baseURL + "/marketplace/search/?query=%s"

	// scrollRounds controls how far down the lazily-loaded results we go.
	scrollRounds = 3
	scrollPause  = 1500 * time.Millisecond
)

// Scraper fetches Facebook Marketplace listings by driving a headless
// browser. It implements domain.ListingSource.
//
// Marketplace requires a logged-in session; the scraper reuses a persistent
// browser profile prepared out of band (an external concern), so no login
// state is managed here.
type Scraper struct {
	profileDir  string
	chromeBin   string
	headless    bool
	pageTimeout time.Duration
}

// NewScraper creates a Marketplace scraper using the given persistent
// profile directory. chromeBin may be empty to use the default browser
// lookup.
func NewScraper(profileDir, chromeBin string, pageTimeout time.Duration) *Scraper {
	if pageTimeout == 0 {
		pageTimeout = 90 * time.Second
	}
	return &Scraper{
		profileDir:  profileDir,
		chromeBin:   chromeBin,
		headless:    true,
		pageTimeout: pageTimeout,
	}
}

// Fetch navigates to the Marketplace search page for keyword, scrolls to
// load results, and parses up to maxItems listing cards out of the rendered
// HTML.
func (s *Scraper) Fetch(ctx context.Context, keyword string, maxItems int) ([]domain.RawListing, error) {
	searchURL := fmt.Sprintf(searchURLFormat, url.QueryEscape(keyword))
	log.Printf("[FACEBOOK] starting scrape for keyword=%q", keyword)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserDataDir(s.profileDir),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if s.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(s.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, s.pageTimeout)
	defer cancelTimeout()

	actions := []chromedp.Action{
		chromedp.Navigate(searchURL),
		chromedp.WaitVisible(cardSelector, chromedp.ByQuery),
	}
	for i := 0; i < scrollRounds; i++ {
		actions = append(actions,
			chromedp.Evaluate(`window.scrollBy(0, 2000)`, nil),
			chromedp.Sleep(scrollPause),
		)
	}

	var html string
	actions = append(actions, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrScrapeFailure, err)
	}

	listings, err := ParseSearchHTML(html, maxItems)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrScrapeFailure, err)
	}

	log.Printf("[FACEBOOK] scrape finished, collected %d listings", len(listings))
	return listings, nil
}
