package ebay

// Wire types for the eBay OAuth, Taxonomy and Browse APIs. Only the fields
// the collaborator reads are declared.

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type categoryTreeResponse struct {
	CategoryTreeID string `json:"categoryTreeId"`
}

type categorySuggestionsResponse struct {
	CategorySuggestions []categorySuggestion `json:"categorySuggestions"`
}

type categorySuggestion struct {
	Category struct {
		CategoryID   string `json:"categoryId"`
		CategoryName string `json:"categoryName"`
	} `json:"category"`
}

type browseSearchResponse struct {
	ItemSummaries []itemSummary `json:"itemSummaries"`
	Total         int           `json:"total"`
	Next          string        `json:"next"`
}

type itemSummary struct {
	Title      string     `json:"title"`
	Price      *itemPrice `json:"price"`
	ItemWebURL string     `json:"itemWebUrl"`
}

type itemPrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}
