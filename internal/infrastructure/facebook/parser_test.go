package facebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPageHTML = `
<html><body>
  <div role="main">
    <a href="/marketplace/item/111/?ref=search">
      <div><img src="x.jpg"/></div>
      <div><span>£120</span></div>
      <div><span>Road bike, barely used</span></div>
      <div><span>London</span></div>
    </a>
    <a href="/marketplace/item/222/">
      <div><span>£1,450</span></div>
      <div><span>Carbon frame bike</span></div>
    </a>
    <a href="/marketplace/item/111/?ref=search">
      <div><span>£120</span></div>
      <div><span>Road bike, barely used (duplicate card)</span></div>
    </a>
    <a href="/marketplace/item/333/">
      <div><span>Free</span></div>
      <div><span>Kids bike</span></div>
    </a>
    <a href="/groups/555/">not a marketplace item</a>
  </div>
</body></html>`

func TestParseSearchHTML(t *testing.T) {
	listings, err := ParseSearchHTML(searchPageHTML, 10)
	require.NoError(t, err)
	require.Len(t, listings, 3)

	assert.Equal(t, "£120", listings[0].PriceText)
	assert.Equal(t, "Road bike, barely used", listings[0].Title)
	assert.Equal(t, "https://www.facebook.com/marketplace/item/111/?ref=search", listings[0].URL)

	assert.Equal(t, "£1,450", listings[1].PriceText)
	assert.Equal(t, "Carbon frame bike", listings[1].Title)

	// "Free" still comes through as price text; the normalizer decides later.
	assert.Equal(t, "Free", listings[2].PriceText)
}

func TestParseSearchHTMLCapsAtMaxItems(t *testing.T) {
	listings, err := ParseSearchHTML(searchPageHTML, 1)
	require.NoError(t, err)
	assert.Len(t, listings, 1)
}

func TestParseSearchHTMLEmptyPage(t *testing.T) {
	listings, err := ParseSearchHTML("<html><body><p>Log in to continue</p></body></html>", 5)
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestParseSearchHTMLSingleLineCard(t *testing.T) {
	html := `<html><body><a href="/marketplace/item/9/"><span>£30</span></a></body></html>`

	listings, err := ParseSearchHTML(html, 5)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "£30", listings[0].PriceText)
	assert.Equal(t, "N/A", listings[0].Title)
}

func TestNewScraperDefaults(t *testing.T) {
	s := NewScraper("/tmp/profile", "", 0)
	assert.True(t, s.headless)
	assert.NotZero(t, s.pageTimeout)
}
