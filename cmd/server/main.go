package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/cosmicreseller/backend/config"
	httpDelivery "github.com/cosmicreseller/backend/internal/delivery/http"
	"github.com/cosmicreseller/backend/internal/domain"
	"github.com/cosmicreseller/backend/internal/infrastructure/cache"
	"github.com/cosmicreseller/backend/internal/infrastructure/ebay"
	"github.com/cosmicreseller/backend/internal/infrastructure/facebook"
	"github.com/cosmicreseller/backend/internal/usecase"
)

func main() {
	// Load configuration
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting CosmicReseller Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("eBay marketplace: %s", cfg.Ebay.MarketplaceID)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	ebayClient := ebay.NewClient(
		cfg.Ebay.ClientID,
		cfg.Ebay.ClientSecret,
		cfg.Ebay.BaseURL,
		cfg.Ebay.MarketplaceID,
		memoryCache,
	)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		ebayClient.SetDebug(true)
		log.Printf("eBay client debug mode enabled")
	}

	fbScraper := facebook.NewScraper(
		cfg.Facebook.ProfileDir,
		cfg.Facebook.ChromeBin,
		cfg.Facebook.PageTimeout,
	)
	log.Printf("Facebook scraper profile: %s", cfg.Facebook.ProfileDir)

	// Initialize usecase layer
	dealService := usecase.NewDealService(map[string]domain.ListingSource{
		"ebay":     ebayClient,
		"facebook": fbScraper,
	})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(dealService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
