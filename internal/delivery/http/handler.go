package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cosmicreseller/backend/internal/domain"
)

const (
	defaultMaxItems       = 1
	defaultThresholdRatio = 0.8
)

// DealSearcher is the slice of the deal service the HTTP layer needs.
type DealSearcher interface {
	GetCheapItems(ctx context.Context, source, keyword string, maxItems int, thresholdRatio float64) (*domain.FilterResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	deals DealSearcher
}

// NewHandler creates a new HTTP handler
func NewHandler(deals DealSearcher) *Handler {
	return &Handler{deals: deals}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cosmicreseller-backend",
		"version": "1.0.0",
	})
}

// SearchDeals handles deal search requests. It validates the parameters the
// way the core expects them (keyword present, maxItems ≥ 1, thresholdRatio
// strictly inside (0, 1)) before handing off to the orchestrator.
func (h *Handler) SearchDeals(c *gin.Context) {
	if h.deals == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "deal service not configured"})
		return
	}

	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source and keyword are required"})
		return
	}

	if req.MaxItems == 0 {
		req.MaxItems = defaultMaxItems
	}
	if req.ThresholdRatio == 0 {
		req.ThresholdRatio = defaultThresholdRatio
	}

	if req.MaxItems < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "maxItems must be at least 1"})
		return
	}
	if req.ThresholdRatio <= 0 || req.ThresholdRatio >= 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "thresholdRatio must be between 0 and 1 (e.g. 0.8)"})
		return
	}

	result, err := h.deals.GetCheapItems(c.Request.Context(), req.Source, req.Keyword, req.MaxItems, req.ThresholdRatio)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"source":         req.Source,
		"keyword":        req.Keyword,
		"thresholdRatio": req.ThresholdRatio,
		"averagePrice":   result.AveragePrice,
		"cheapItems":     result.CheapItems,
	})
}

// statusForError maps domain errors onto HTTP status codes. Collaborator
// failures surface as bad gateway since the upstream marketplace, not this
// service, failed.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnsupportedSource), errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuthFailure),
		errors.Is(err, domain.ErrEbayAPIFailure),
		errors.Is(err, domain.ErrScrapeFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
