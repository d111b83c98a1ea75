package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsAllowedOrigin(t *testing.T) {
	allowed := []string{"http://localhost:3000", "https://preview.cosmicreseller.dev:*"}

	tests := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:3000", true},
		{"https://preview.cosmicreseller.dev:8443", true},
		{"http://evil.example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			if got := isAllowedOrigin(tt.origin, allowed); got != tt.want {
				t.Errorf("isAllowedOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func TestCORSMiddlewareSetsHeaders(t *testing.T) {
	router := setupTestRouter(&stubDealSearcher{})

	req, _ := http.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q, want %q", got, "http://localhost:3000")
	}
}

func TestCORSMiddlewareIgnoresUnknownOrigin(t *testing.T) {
	router := setupTestRouter(&stubDealSearcher{})

	req, _ := http.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty", got)
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	router := setupTestRouter(&stubDealSearcher{})

	req, _ := http.NewRequest("OPTIONS", "/api/v1/deals/search", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusNoContent)
	}
}
