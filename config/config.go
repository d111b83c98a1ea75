package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Ebay     EbayConfig
	Facebook FacebookConfig
	Cache    CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EbayConfig holds eBay API credentials and endpoints
type EbayConfig struct {
	ClientID      string `mapstructure:"client_id"`
	ClientSecret  string `mapstructure:"client_secret"`
	BaseURL       string `mapstructure:"base_url"`
	MarketplaceID string `mapstructure:"marketplace_id"`
}

// FacebookConfig holds browser-automation settings for the Marketplace
// scraper. ProfileDir points at a persistent, already-authenticated browser
// profile prepared outside this service.
type FacebookConfig struct {
	ProfileDir  string        `mapstructure:"profile_dir"`
	ChromeBin   string        `mapstructure:"chrome_bin"`
	PageTimeout time.Duration `mapstructure:"page_timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cosmicreseller/")

	// Environment variable settings
	v.SetEnvPrefix("COSMIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// eBay defaults. Credentials default to empty so the env-bound keys are
	// known to viper at Unmarshal time; validation rejects them if unset.
	v.SetDefault("ebay.client_id", "")
	v.SetDefault("ebay.client_secret", "")
	v.SetDefault("ebay.base_url", "https://api.ebay.com")
	v.SetDefault("ebay.marketplace_id", "EBAY_GB")

	// Facebook defaults
	v.SetDefault("facebook.profile_dir", "./scripts/chrome_profile")
	v.SetDefault("facebook.chrome_bin", "")
	v.SetDefault("facebook.page_timeout", "90s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Ebay.ClientID == "" || config.Ebay.ClientSecret == "" {
		return fmt.Errorf("eBay credentials are required (set COSMIC_EBAY_CLIENT_ID and COSMIC_EBAY_CLIENT_SECRET)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Facebook.ProfileDir == "" {
		return fmt.Errorf("Facebook profile directory must not be empty")
	}

	return nil
}
