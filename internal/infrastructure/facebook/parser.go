package facebook

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/cosmicreseller/backend/internal/domain"
)

const (
	baseURL      = "https://www.facebook.com"
	cardSelector = `a[href^="/marketplace/item/"]`
)

// ParseSearchHTML extracts marketplace listings from a rendered search
// results page. Each item card is an anchor whose visible text stacks the
// price on the first line and the title on the second. Cards are
// deduplicated by item URL and capped at maxItems.
func ParseSearchHTML(html string, maxItems int) ([]domain.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(baseURL)
	seen := make(map[string]struct{})
	listings := make([]domain.RawListing, 0, maxItems)

	doc.Find(cardSelector).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		href, ok := card.Attr("href")
		if !ok || href == "" {
			return true
		}

		fullURL := absoluteURL(base, href)
		if _, dup := seen[fullURL]; dup {
			return true
		}
		seen[fullURL] = struct{}{}

		lines := textLines(card)
		if len(lines) == 0 {
			return true
		}

		priceText := lines[0]
		title := "N/A"
		if len(lines) > 1 {
			title = lines[1]
		}

		listings = append(listings, domain.RawListing{
			Title:     title,
			PriceText: priceText,
			URL:       fullURL,
		})
		return len(listings) < maxItems
	})

	return listings, nil
}

// textLines returns the trimmed text of each leaf element under sel, in
// document order, the goquery equivalent of splitting innerText on
// newlines.
func textLines(sel *goquery.Selection) []string {
	var lines []string
	sel.Find("*").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 {
			return
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	if len(lines) == 0 {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			lines = append(lines, text)
		}
	}
	return lines
}

func absoluteURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
